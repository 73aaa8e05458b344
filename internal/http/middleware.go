package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/itamlab/assetview-ui/internal/access"
	"github.com/itamlab/assetview-ui/internal/backend"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Guard returns the route-access middleware. It resolves the browser session
// from the cookie, asks the policy for a decision, and either redirects or
// lets the request through with the session and session ID in the context so
// handlers and the backend client can reach them.
func (h *Handlers) Guard(policy *access.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := h.sessionIDFromRequest(r)
			sess := h.Sessions.Read(r.Context(), sessionID)

			decision := policy.Decide(sess, access.Route{
				Path:     r.URL.Path,
				FullPath: r.URL.RequestURI(),
			})
			switch decision.Kind {
			case access.RedirectToLogin:
				RedirectToLogin(w, r, decision.ReturnPath)
				return
			case access.RedirectToForbidden:
				RedirectToForbidden(w, r, "")
				return
			case access.Allow:
			}

			// Public pages still see the session when there is one (the login
			// page redirects signed-in users home).
			ctx := SetSessionInContext(r.Context(), sess)
			if sessionID != "" {
				ctx = backend.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
