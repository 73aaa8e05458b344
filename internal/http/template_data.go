package httpx

import (
	domainauth "github.com/itamlab/assetview-ui/internal/domain/auth"
)

// PageData is the view model handed to every page template. Page-specific
// content goes in Data; the layout reads the rest.
type PageData struct {
	// Title is the page title shown in the tab and header.
	Title string
	// User is the signed-in claim, nil on public pages.
	User *domainauth.UserClaim
	// Error is an inline error message (conflicts, request failures) shown
	// above the page content.
	Error string
	// Notice is an inline success message after a completed write.
	Notice string
	// Form echoes submitted values back into the form after a failed write.
	Form map[string]string
	// Data carries the page-specific view model.
	Data any
}

// FormValue returns the echoed form value for key, or "".
func (d *PageData) FormValue(key string) string {
	if d.Form == nil {
		return ""
	}
	return d.Form[key]
}

// IsAdmin reports whether the current user holds the admin role. Used by the
// layout to build the navigation bar.
func (d *PageData) IsAdmin() bool { return d.hasRole(domainauth.RoleAdmin) }

// IsManager reports whether the current user holds the manager role.
func (d *PageData) IsManager() bool { return d.hasRole(domainauth.RoleManager) }

// IsSupervisor reports whether the current user holds the supervisor role.
func (d *PageData) IsSupervisor() bool { return d.hasRole(domainauth.RoleSupervisor) }

func (d *PageData) hasRole(role domainauth.Role) bool {
	return d.User != nil && d.User.Role == role
}
