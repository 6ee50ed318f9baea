package controller

// Kind identifies the variant of a controller Error.
type Kind int

const (
	KindMissingParam Kind = iota + 1
	KindInvalidParam
	KindServer
)

// Error is the closed set of failures a controller reports in a Response body.
type Error struct {
	Kind  Kind
	Field string
}

// MissingParam reports a required field that was absent or empty.
func MissingParam(field string) *Error {
	return &Error{Kind: KindMissingParam, Field: field}
}

// InvalidParam reports a field that failed a semantic check.
func InvalidParam(field string) *Error {
	return &Error{Kind: KindInvalidParam, Field: field}
}

// ServerFailure reports an unexpected failure. The cause is never attached.
func ServerFailure() *Error {
	return &Error{Kind: KindServer}
}

// Name returns the stable error name used by transports.
func (e *Error) Name() string {
	switch e.Kind {
	case KindMissingParam:
		return "MissingParamError"
	case KindInvalidParam:
		return "InvalidParamError"
	default:
		return "ServerError"
	}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMissingParam:
		return "missing param: " + e.Field
	case KindInvalidParam:
		return "invalid param: " + e.Field
	default:
		return "internal server error"
	}
}
