package httpx

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/itamlab/assetview-ui/config"
	"github.com/itamlab/assetview-ui/internal/backend"
	domainauth "github.com/itamlab/assetview-ui/internal/domain/auth"
	"github.com/itamlab/assetview-ui/internal/ports"
)

// Handlers bundles the dependencies shared by all page handlers.
type Handlers struct {
	Backend  *backend.Client
	Sessions ports.SessionStore
	Renderer *TemplateRenderer
	Session  config.SessionConfig
	Logger   *slog.Logger
}

func (h *Handlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// setSessionCookie writes the browser session cookie. The cookie carries only
// the opaque session ID; token and claim live server-side in the store.
func (h *Handlers) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Session.CookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   h.Session.CookieDomain,
		HttpOnly: true,
		Secure:   h.cookieSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.Session.TTL / time.Second),
	})
}

// clearSessionCookie expires the browser session cookie.
func (h *Handlers) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Session.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.Session.CookieDomain,
		HttpOnly: true,
		Secure:   h.cookieSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (h *Handlers) cookieSecure(r *http.Request) bool {
	if !h.Session.CookieSecure {
		return false
	}
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}

// sessionIDFromRequest returns the browser session ID from the cookie, or ""
// when the cookie is absent.
func (h *Handlers) sessionIDFromRequest(r *http.Request) string {
	c, err := r.Cookie(h.Session.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// currentUser returns the claim of the session in the request context, or nil
// when unauthenticated.
func currentUser(r *http.Request) *domainauth.UserClaim {
	sess := GetSessionFromContext(r.Context())
	return sess.User
}

// renderPage executes the named page template inside the layout. Render
// failures after headers are out cannot be recovered, so they are only
// logged.
func (h *Handlers) renderPage(w http.ResponseWriter, r *http.Request, page string, data *PageData) {
	if data == nil {
		data = &PageData{}
	}
	if data.User == nil {
		data.User = currentUser(r)
	}
	if data.Notice == "" {
		data.Notice = r.URL.Query().Get("notice")
	}
	if err := h.Renderer.Render(w, page, data); err != nil {
		h.logger().ErrorContext(r.Context(), "render page failed", "page", page, "error", err)
	}
}

// pathID parses the {id} path value as an int64.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
