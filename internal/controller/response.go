package controller

import "net/http"

// OK wraps a successful result.
func OK(body any) Response {
	return Response{StatusCode: http.StatusOK, Body: body}
}

// BadRequest wraps a validation failure.
func BadRequest(err *Error) Response {
	return Response{StatusCode: http.StatusBadRequest, Body: err}
}

// ServerError builds the opaque 500 envelope.
func ServerError() Response {
	return Response{StatusCode: http.StatusInternalServerError, Body: ServerFailure()}
}
