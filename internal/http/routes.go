package httpx

import (
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"

	assetview "github.com/itamlab/assetview-ui"
	"github.com/itamlab/assetview-ui/config"
	"github.com/itamlab/assetview-ui/internal/access"
	"github.com/itamlab/assetview-ui/internal/backend"
	"github.com/itamlab/assetview-ui/internal/ports"
)

// Paths used when serving assets from disk in dev mode.
const (
	TemplatePathFromRoot = "frontend/templates"
	StaticPathFromRoot   = "frontend/static"
)

// RouterServices holds all the dependencies needed by the HTTP router.
type RouterServices struct {
	Backend  *backend.Client
	Sessions ports.SessionStore
	Session  config.SessionConfig
	IsDev    bool         // Development mode flag for template reloading, etc.
	Logger   *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router with the access guard
// applied to every route.
func NewRouter(services RouterServices) (http.Handler, error) {
	renderer, err := newRenderer(services)
	if err != nil {
		return nil, err
	}

	h := &Handlers{
		Backend:  services.Backend,
		Sessions: services.Sessions,
		Renderer: renderer,
		Session:  services.Session,
		Logger:   services.Logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /", h.Home)
	mux.HandleFunc("GET /login", h.ShowLogin)
	mux.HandleFunc("POST /login", h.SubmitLogin)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("GET /forbidden", h.Forbidden)
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	mux.HandleFunc("GET /admin", h.AdminUsers)
	mux.HandleFunc("POST /admin/users", h.AdminCreateUser)
	mux.HandleFunc("POST /admin/users/{id}/update", h.AdminUpdateUser)
	mux.HandleFunc("POST /admin/users/{id}/delete", h.AdminDeleteUser)
	mux.HandleFunc("GET /admin/audit", h.AdminAuditLogs)
	mux.HandleFunc("GET /admin/software-types", h.AdminSoftwareTypes)
	mux.HandleFunc("POST /admin/software-types", h.AdminCreateSoftwareType)

	mux.HandleFunc("GET /manager", h.ManagerComputers)
	mux.HandleFunc("POST /manager/computers", h.ManagerCreateComputer)
	mux.HandleFunc("GET /manager/computers/{id}", h.ManagerComputerDetail)
	mux.HandleFunc("POST /manager/computers/{id}/delete", h.ManagerDeleteComputer)
	mux.HandleFunc("POST /manager/computers/{id}/assignments", h.ManagerCreateAssignment)
	mux.HandleFunc("GET /manager/software", h.ManagerSoftware)
	mux.HandleFunc("POST /manager/software", h.ManagerCreateSoftware)
	mux.HandleFunc("GET /manager/licenses", h.ManagerLicenses)
	mux.HandleFunc("POST /manager/licenses", h.ManagerCreateLicense)
	mux.HandleFunc("GET /manager/vendors", h.ManagerVendors)
	mux.HandleFunc("POST /manager/vendors", h.ManagerCreateVendor)
	mux.HandleFunc("GET /manager/installations", h.ManagerInstallations)
	mux.HandleFunc("POST /manager/installations", h.ManagerCreateInstallation)
	mux.HandleFunc("GET /manager/reports", h.ManagerReports)

	mux.HandleFunc("GET /supervisor", h.SupervisorDepartments)
	mux.HandleFunc("GET /supervisor/departments/{id}", h.SupervisorDepartmentOverview)
	mux.HandleFunc("GET /supervisor/licenses/expiring", h.SupervisorExpiringLicenses)

	// Static assets at /static
	// Dev mode: serve from disk for hot reloading
	// Prod mode: serve from embedded FS
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS(services.IsDev))))

	return h.Guard(access.NewPolicy())(mux), nil
}

func newRenderer(services RouterServices) (*TemplateRenderer, error) {
	if services.IsDev {
		return NewTemplateRenderer(TemplateRendererConfig{
			TemplateFS: os.DirFS(TemplatePathFromRoot),
			DevMode:    true,
			Logger:     services.Logger,
		})
	}

	templateFS, err := fs.Sub(assetview.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		return nil, err
	}
	return NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Logger:     services.Logger,
	})
}

func staticFS(isDev bool) fs.FS {
	if isDev {
		return os.DirFS(StaticPathFromRoot)
	}
	sub, err := fs.Sub(assetview.StaticFS, StaticPathFromRoot)
	if err != nil {
		// Embedded FS paths are fixed at build time; failure here is a
		// packaging bug.
		log.Printf("static assets unavailable: %v", err)
		return os.DirFS(StaticPathFromRoot)
	}
	return sub
}
