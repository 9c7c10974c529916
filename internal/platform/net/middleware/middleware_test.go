package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "agenda/internal/platform/errors"
	pnet "agenda/internal/platform/net"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type portFunc func(*http.Request) (string, error)

func (f portFunc) Parse(r *http.Request) (string, error) { return f(r) }

func TestAuth(t *testing.T) {
	cases := []struct {
		name     string
		port     AuthPort
		status   int
		wantUser string
	}{
		{"nil port passes", nil, http.StatusOK, ""},
		{"resolved", portFunc(func(*http.Request) (string, error) { return "u1", nil }), http.StatusOK, "u1"},
		{"rejected", portFunc(func(*http.Request) (string, error) {
			return "", perr.Unauthorizedf("invalid bearer token")
		}), http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			h := Auth(tc.port, writeJSON)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = pnet.UserID(r.Context())
			}))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
			if rec.Code != tc.status || seen != tc.wantUser {
				t.Fatalf("status=%d user=%q", rec.Code, seen)
			}
			if tc.status == http.StatusUnauthorized {
				var env pnet.Envelope
				if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil || env.Code != perr.ErrorCodeUnauthorized {
					t.Fatalf("body = %s (%v)", rec.Body.String(), err)
				}
			}
		})
	}
}

func TestRecover(t *testing.T) {
	h := RequestID()(Recover(writeJSON)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("kaboom"))
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var env pnet.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("body: %v", err)
	}
	if env.Code != perr.ErrorCodePanic || env.RequestID == "" || env.Error != "internal error" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestRecover_AbortHandlerPropagates(t *testing.T) {
	h := Recover(writeJSON)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if recover() != http.ErrAbortHandler {
			t.Fatalf("ErrAbortHandler was swallowed")
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestAccessLog_PassesThrough(t *testing.T) {
	h := AccessLog(0)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pot", nil))
	if rec.Code != http.StatusTeapot || rec.Body.String() != "short and stout" {
		t.Fatalf("status=%d body=%q", rec.Code, rec.Body.String())
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := CORS([]string{"https://cal.example"})(http.NotFoundHandler())
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/appointments", nil)
	req.Header.Set("Origin", "https://cal.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://cal.example" {
		t.Fatalf("allow origin = %q", got)
	}
}
