// Package httpkit is what module http packages import: the router seam, handler
// adapters, request accessors and the shared middleware stack
package httpkit

import (
	"net/http"

	phttp "agenda/internal/platform/net/http"
)

type (
	// Envelope is the JSON body of every response
	Envelope = phttp.Envelope
	// Response lets a handler pick its own status
	Response = phttp.Response
	// Handler is the route handler shape
	Handler = phttp.Handler
	// Router is the routing seam
	Router = phttp.Router
)

// OK is a 200 with data
func OK(data any) Response { return phttp.OK(data) }

// Created is a 201 with data
func Created(data any) Response { return phttp.Created(data) }

// NoContent is an empty 204
func NoContent() Response { return phttp.NoContent() }

// Call adapts a body-less handler
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.Call(fn) }

// WriteError writes err as an envelope, for handlers that stream their own body
func WriteError(w http.ResponseWriter, r *http.Request, err error) { phttp.RespondError(w, r, err) }
