package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/plugfox/hunchworks-server/api"
	"github.com/plugfox/hunchworks-server/internal/metrics"
)

const (
	methodOverrideField  = "_method"
	methodOverrideHeader = "X-HTTP-Method-Override"

	// Largest form body inspected for a method override.
	maxOverrideFormSize = 1 << 20
)

// middlewareAuthorization is a middleware function that checks the Authorization header for a Bearer token.
// Rejected requests are answered by unauthorized with the reason.
func middlewareAuthorization(secret string, unauthorized func(w http.ResponseWriter, r *http.Request, message string)) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")

			// Check if the Authorization header is missing
			if authHeader == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				unauthorized(w, r, "Authorization header is required")

				return
			}

			// Check if the Authorization header is not a Bearer token
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				w.Header().Set("WWW-Authenticate", "Bearer")
				unauthorized(w, r, "Bearer token is required")

				return
			}

			if token != secret {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				unauthorized(w, r, "Invalid Bearer token")

				return
			}

			// Call the next handler
			next.ServeHTTP(w, r)
		})
	}
}

// middlewareErrorRecoverer is a middleware function that recovers from panics and returns an error response.
func middlewareErrorRecoverer(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if e, ok := err.(error); ok && errors.Is(e, http.ErrAbortHandler) {
						// we don't recover http.ErrAbortHandler so the response
						// to the client is aborted, this should not be logged
						panic(err)
					}

					logger.ErrorContext(r.Context(), "Recovered from panic",
						slog.String("error", fmt.Sprintf("%v", err)),
						slog.String("stack", string(debug.Stack())),
					)

					api.NewResponse().
						SetError("internal_server_error", "Internal Server Error").
						InternalServerError(w, r)
				}
			}()

			// Call the next handler
			next.ServeHTTP(w, r)
		})
	}
}

// middlewareMethodOverride dispatches a POST as PUT, PATCH or DELETE when the
// X-HTTP-Method-Override header or the _method form field asks for it.
// The form body is restored so handlers can still decode it.
func middlewareMethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		method := r.Header.Get(methodOverrideHeader)
		if method == "" && render.GetRequestContentType(r) == render.ContentTypeForm && r.Body != nil {
			body, err := io.ReadAll(io.LimitReader(r.Body, maxOverrideFormSize))
			r.Body.Close()
			if err != nil {
				api.NewResponse().SetError("bad_request", err.Error()).BadRequest(w, r)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))

			if values, err := url.ParseQuery(string(body)); err == nil {
				method = values.Get(methodOverrideField)
			}
		}

		switch method = strings.ToUpper(method); method {
		case http.MethodPut, http.MethodPatch, http.MethodDelete:
			r.Method = method
		}

		next.ServeHTTP(w, r)
	})
}

// middlewareMetrics reports every request with its matched route pattern.
// A panicking handler is reported as a 500 before the panic moves on to the recoverer.
func middlewareMetrics(metrics metrics.MetricsLogger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startedAt := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			panicked := true
			defer func() {
				method, route := r.Method, "unmatched"
				if rctx := chi.RouteContext(r.Context()); rctx != nil {
					if rctx.RouteMethod != "" {
						method = rctx.RouteMethod
					}
					if pattern := rctx.RoutePattern(); pattern != "" {
						route = pattern
					}
				}

				status := ww.Status()
				switch {
				case panicked:
					status = http.StatusInternalServerError
				case status == 0:
					status = http.StatusOK
				}

				metrics.LogRequest(method, route, status, time.Since(startedAt))
			}()

			next.ServeHTTP(ww, r)
			panicked = false
		})
	}
}
