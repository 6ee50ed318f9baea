package controller

import "context"

// Request is the transport-neutral shape handed to a controller.
type Request struct {
	Body map[string]any
}

// Response is the envelope every controller returns.
type Response struct {
	StatusCode int
	Body       any
}

// Controller handles a single request and always produces a Response.
type Controller interface {
	Handle(ctx context.Context, req Request) Response
}
