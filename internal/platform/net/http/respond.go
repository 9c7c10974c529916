package http

import (
	"encoding/json"
	"net/http"

	pnet "agenda/internal/platform/net"
)

// Envelope is the body of every JSON response
type Envelope = pnet.Envelope

// JSON writes v with status
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes the error envelope for err
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status, env := pnet.Failure(err, pnet.RequestID(r.Context()))
	JSON(w, status, env)
}

// Response is what return style handlers produce; Body may be an error
type Response struct {
	Status int
	Body   any
}

// OK is a 200 with data
func OK(data any) Response { return Response{Status: http.StatusOK, Body: data} }

// Created is a 201 with data
func Created(data any) Response { return Response{Status: http.StatusCreated, Body: data} }

// NoContent is an empty 204
func NoContent() Response { return Response{Status: http.StatusNoContent} }

// Error maps err to its status
func Error(err error) Response { return Response{Body: err} }

// Handle adapts a Response returning func to a Handler
func Handle(fn func(*http.Request) Response) Handler {
	return func(w http.ResponseWriter, r *http.Request) {
		res := fn(r)
		if err, ok := res.Body.(error); ok && err != nil {
			RespondError(w, r, err)
			return
		}
		status := res.Status
		if status == 0 {
			status = http.StatusOK
		}
		if status == http.StatusNoContent {
			w.WriteHeader(status)
			return
		}
		JSON(w, status, pnet.Success(status, res.Body, pnet.RequestID(r.Context())))
	}
}
