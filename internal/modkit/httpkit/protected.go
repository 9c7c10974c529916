package httpkit

import (
	"agenda/internal/platform/net/middleware"
)

// Protected groups routes under bearer auth; handlers inside read the owner with User(r)
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}
