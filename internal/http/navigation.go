package httpx

// Navigation acts on access and backend errors with history-replacing
// redirects. All redirects use 303 See Other so the intermediate URL does not
// linger in the browser's back stack and form POSTs re-land on a GET.

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/itamlab/assetview-ui/internal/access"
	apperrors "github.com/itamlab/assetview-ui/internal/errors"
)

// RedirectToLogin sends the browser to the login screen, carrying the
// originally requested path so login can return the user there.
func RedirectToLogin(w http.ResponseWriter, r *http.Request, returnPath string) {
	target := access.PathLogin
	if p := safeRedirectPath(returnPath); p != "" && p != access.PathHome {
		target += "?redirect=" + url.QueryEscape(p)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RedirectToForbidden sends the browser to the forbidden screen, carrying the
// server-supplied denial message when there is one.
func RedirectToForbidden(w http.ResponseWriter, r *http.Request, message string) {
	target := access.PathForbidden
	if message != "" {
		target += "?message=" + url.QueryEscape(message)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RedirectToHome sends the browser to the home route, which dispatches on
// role.
func RedirectToHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, access.PathHome, http.StatusSeeOther)
}

// RedirectWithNotice sends the browser to a panel path carrying a success
// message, which the GET render picks up as the page notice.
func RedirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	if notice != "" {
		path += "?notice=" + url.QueryEscape(notice)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// safeRedirectPath accepts only same-app relative paths: it must start with
// a single "/" and parse without a scheme or host. Anything else (absolute
// URLs, scheme-relative "//evil.com", garbage) falls back to empty.
func safeRedirectPath(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return ""
	}
	return raw
}

// HandleBackendError is the single funnel for errors coming back from the
// backend client. Session-expiry and permission errors become redirects and
// the caller is done; anything else (conflicts, request failures) stays with
// the caller to render inline. Returns true when the error was handled here.
func (h *Handlers) HandleBackendError(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case err == nil:
		return false
	case apperrors.IsUnauthorized(err):
		// The client already cleared the stored session; drop the cookie too
		// so the guard stops consulting the store for this browser.
		h.clearSessionCookie(w, r)
		RedirectToLogin(w, r, r.URL.RequestURI())
		return true
	case apperrors.IsForbidden(err):
		RedirectToForbidden(w, r, apperrors.UserMessage(err))
		return true
	default:
		return false
	}
}
