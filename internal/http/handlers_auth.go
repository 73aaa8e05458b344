package httpx

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/itamlab/assetview-ui/internal/access"
	domainauth "github.com/itamlab/assetview-ui/internal/domain/auth"
	apperrors "github.com/itamlab/assetview-ui/internal/errors"
)

// ShowLogin renders the login screen.
// GET /login?redirect=<optional_return_path>.
func (h *Handlers) ShowLogin(w http.ResponseWriter, r *http.Request) {
	// Signed-in users have no business on the login screen.
	if sess := GetSessionFromContext(r.Context()); sess.IsAuthenticated() {
		RedirectToHome(w, r)
		return
	}
	h.renderPage(w, r, "login", &PageData{
		Title: "Sign in",
		Form:  map[string]string{"redirect": safeRedirectPath(r.URL.Query().Get("redirect"))},
	})
}

// SubmitLogin exchanges the submitted credentials for a backend token, mints
// a fresh session and sends the user to their return path or role landing.
// POST /login.
func (h *Handlers) SubmitLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	returnPath := safeRedirectPath(r.PostFormValue("redirect"))

	result, err := h.Backend.Login(r.Context(), username, password)
	if err != nil {
		message := apperrors.UserMessage(err)
		if !apperrors.IsInvalidCredentials(err) {
			h.logger().ErrorContext(r.Context(), "login failed", "error", err)
		}
		h.renderPage(w, r, "login", &PageData{
			Title: "Sign in",
			Error: message,
			Form:  map[string]string{"username": username, "redirect": returnPath},
		})
		return
	}

	// Fresh session ID on every login; never reuse the pre-login cookie
	// value.
	claim := result.Claim()
	sessionID := uuid.NewString()
	sess := domainauth.Session{Token: result.Token, User: &claim}
	if err := h.Sessions.Save(r.Context(), sessionID, sess); err != nil {
		h.logger().ErrorContext(r.Context(), "save session failed", "error", err)
		h.renderPage(w, r, "login", &PageData{
			Title: "Sign in",
			Error: "Sign-in could not be completed, try again",
			Form:  map[string]string{"username": username, "redirect": returnPath},
		})
		return
	}
	h.setSessionCookie(w, r, sessionID)

	if returnPath != "" {
		http.Redirect(w, r, returnPath, http.StatusSeeOther)
		return
	}
	RedirectToHome(w, r)
}

// Logout clears the stored session and the cookie. Clearing is idempotent,
// so a stale or double-submitted logout still lands on the login screen.
// POST /logout.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionID := h.sessionIDFromRequest(r); sessionID != "" {
		if err := h.Sessions.Clear(r.Context(), sessionID); err != nil {
			h.logger().WarnContext(r.Context(), "clear session on logout failed", "error", err)
		}
	}
	h.clearSessionCookie(w, r)
	http.Redirect(w, r, access.PathLogin, http.StatusSeeOther)
}

// Forbidden renders the forbidden screen with the denial message carried in
// the query, if any.
// GET /forbidden?message=<optional>.
func (h *Handlers) Forbidden(w http.ResponseWriter, r *http.Request) {
	message := r.URL.Query().Get("message")
	if message == "" {
		message = "You do not have access to this page"
	}
	h.renderPage(w, r, "forbidden", &PageData{
		Title: "Access denied",
		Data:  message,
	})
}

// Home dispatches the signed-in user to their role's landing page. Roles
// without a dedicated area get the generic landing view.
// GET /.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	// ServeMux treats "GET /" as a catch-all; anything but the root itself
	// is a 404.
	if r.URL.Path != access.PathHome {
		http.NotFound(w, r)
		return
	}

	sess := GetSessionFromContext(r.Context())
	if target, ok := access.HomeRouteFor(sess.Role()); ok {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	h.renderPage(w, r, "home", &PageData{Title: "AssetView"})
}
