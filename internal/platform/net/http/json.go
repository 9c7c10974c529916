package http

import (
	"net/http"

	"agenda/internal/platform/net/http/bind"
)

// Call adapts fn; a returned Response keeps its status, anything else is a 200
func Call(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		return result(out, err)
	})
}

// JSONHandler binds and validates a T body before calling fn
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		return result(out, err)
	})
}

func result(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if res, ok := out.(Response); ok {
		return res
	}
	return OK(out)
}
