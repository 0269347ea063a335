// Package httpx carries the HTTP plumbing shared by the API handlers:
// middleware chaining, request correlation, panic recovery, and JSON writing.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"time"
)

// HeaderRequestID correlates a request across log lines and the response.
const HeaderRequestID = "X-Request-ID"

const contentTypeJSON = "application/json; charset=utf-8"

// Middleware wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

var requestIDCounter atomic.Uint64

// orNotFound substitutes a 404 handler for nil, so a half-wired chain fails
// loudly instead of panicking.
func orNotFound(next http.Handler) http.Handler {
	if next == nil {
		return http.NotFoundHandler()
	}
	return next
}

// Chain applies middleware in declaration order: the first middleware sees
// the request first. Nil entries are skipped.
func Chain(handler http.Handler, middleware ...Middleware) http.Handler {
	wrapped := orNotFound(handler)
	for i := len(middleware); i > 0; i-- {
		if mw := middleware[i-1]; mw != nil {
			wrapped = mw(wrapped)
		}
	}
	return wrapped
}

// newRequestID returns a process-unique correlation id. The counter breaks
// ties when two requests land on the same nanosecond.
func newRequestID() string {
	return fmt.Sprintf("api-%d-%06d", time.Now().UnixNano(), requestIDCounter.Add(1))
}

// RequestID stamps requests without a correlation id and echoes the id on
// the response so callers can quote it in reports.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		next = orNotFound(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = newRequestID()
				r.Header.Set(HeaderRequestID, requestID)
			}
			w.Header().Set(HeaderRequestID, requestID)
			next.ServeHTTP(w, r)
		})
	}
}

// requestSummary extracts loggable request fields, tolerating a nil request.
func requestSummary(r *http.Request) (method, path, requestID string) {
	method, path, requestID = "-", "-", "-"
	if r == nil {
		return method, path, requestID
	}
	if m := strings.TrimSpace(r.Method); m != "" {
		method = m
	}
	if p := strings.TrimSpace(r.URL.Path); p != "" {
		path = p
	}
	if rid := strings.TrimSpace(r.Header.Get(HeaderRequestID)); rid != "" {
		requestID = rid
	}
	return method, path, requestID
}

// RecoverPanic turns handler panics into 500 responses and logs the stack
// with the request fields, so one broken handler cannot take the server down.
func RecoverPanic() Middleware {
	return func(next http.Handler) http.Handler {
		next = orNotFound(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				method, path, requestID := requestSummary(r)
				log.Printf("panic recovered method=%s path=%s request_id=%s panic=%v stack=%s",
					method, path, requestID, recovered, strings.TrimSpace(string(debug.Stack())))
				w.WriteHeader(http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// WriteJSON writes payload as a JSON response with the provided status code.
func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return errors.New("response writer is required")
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

// RequestContext returns r.Context(), falling back to context.Background()
// for a nil request.
func RequestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}
