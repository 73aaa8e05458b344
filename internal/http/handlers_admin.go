package httpx

import (
	"net/http"

	"github.com/itamlab/assetview-ui/internal/backend"
	domainauth "github.com/itamlab/assetview-ui/internal/domain/auth"
	apperrors "github.com/itamlab/assetview-ui/internal/errors"
)

// Admin area: account management, audit trail and software type dictionary.

// AdminUsers renders the account management page.
// GET /admin.
func (h *Handlers) AdminUsers(w http.ResponseWriter, r *http.Request) {
	h.renderAdminUsers(w, r, &PageData{Title: "Accounts"})
}

func (h *Handlers) renderAdminUsers(w http.ResponseWriter, r *http.Request, data *PageData) {
	users, err := h.Backend.ListUsers(r.Context())
	if h.HandleBackendError(w, r, err) {
		return
	}
	if err != nil {
		data.Error = apperrors.UserMessage(err)
	}
	data.Data = users
	h.renderPage(w, r, "admin_users", data)
}

// AdminCreateUser creates an account and re-renders the page, inline on
// conflict.
// POST /admin/users.
func (h *Handlers) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	in := backend.CreateUserInput{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
		Role:     domainauth.Role(r.PostFormValue("role")),
		FullName: r.PostFormValue("full_name"),
	}

	if _, err := h.Backend.CreateUser(r.Context(), in); err != nil {
		if h.HandleBackendError(w, r, err) {
			return
		}
		h.renderAdminUsers(w, r, &PageData{
			Title: "Accounts",
			Error: apperrors.UserMessage(err),
			Form: map[string]string{
				"username":  in.Username,
				"role":      string(in.Role),
				"full_name": in.FullName,
			},
		})
		return
	}
	RedirectWithNotice(w, r, "/admin", "Account created")
}

// AdminUpdateUser updates an account's username, role or full name.
// POST /admin/users/{id}/update.
func (h *Handlers) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	in := backend.UpdateUserInput{
		UserID:   id,
		Username: r.PostFormValue("username"),
		Role:     domainauth.Role(r.PostFormValue("role")),
		FullName: r.PostFormValue("full_name"),
	}

	if _, err := h.Backend.UpdateUser(r.Context(), in); err != nil {
		if h.HandleBackendError(w, r, err) {
			return
		}
		h.renderAdminUsers(w, r, &PageData{Title: "Accounts", Error: apperrors.UserMessage(err)})
		return
	}
	RedirectWithNotice(w, r, "/admin", "Account updated")
}

// AdminDeleteUser removes an account.
// POST /admin/users/{id}/delete.
func (h *Handlers) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.Backend.DeleteUser(r.Context(), id); err != nil {
		if h.HandleBackendError(w, r, err) {
			return
		}
		h.renderAdminUsers(w, r, &PageData{Title: "Accounts", Error: apperrors.UserMessage(err)})
		return
	}
	RedirectWithNotice(w, r, "/admin", "Account deleted")
}

// AdminAuditLogs renders the audit trail, newest first.
// GET /admin/audit?limit=N.
func (h *Handlers) AdminAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 0)
	logs, err := h.Backend.ListAuditLogs(r.Context(), limit)
	if h.HandleBackendError(w, r, err) {
		return
	}
	data := &PageData{Title: "Audit trail", Data: logs}
	if err != nil {
		data.Error = apperrors.UserMessage(err)
	}
	h.renderPage(w, r, "admin_audit", data)
}

// AdminSoftwareTypes renders the software type dictionary.
// GET /admin/software-types.
func (h *Handlers) AdminSoftwareTypes(w http.ResponseWriter, r *http.Request) {
	h.renderAdminSoftwareTypes(w, r, &PageData{Title: "Software types"})
}

func (h *Handlers) renderAdminSoftwareTypes(w http.ResponseWriter, r *http.Request, data *PageData) {
	types, err := h.Backend.ListSoftwareTypes(r.Context())
	if h.HandleBackendError(w, r, err) {
		return
	}
	if err != nil {
		data.Error = apperrors.UserMessage(err)
	}
	data.Data = types
	h.renderPage(w, r, "admin_software_types", data)
}

// AdminCreateSoftwareType adds a software type.
// POST /admin/software-types.
func (h *Handlers) AdminCreateSoftwareType(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	name := r.PostFormValue("name")

	if _, err := h.Backend.CreateSoftwareType(r.Context(), name); err != nil {
		if h.HandleBackendError(w, r, err) {
			return
		}
		h.renderAdminSoftwareTypes(w, r, &PageData{
			Title: "Software types",
			Error: apperrors.UserMessage(err),
			Form:  map[string]string{"name": name},
		})
		return
	}
	RedirectWithNotice(w, r, "/admin/software-types", "Software type created")
}
