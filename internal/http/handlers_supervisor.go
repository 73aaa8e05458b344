package httpx

import (
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/itamlab/assetview-ui/internal/backend"
	apperrors "github.com/itamlab/assetview-ui/internal/errors"
)

// Supervisor area: department overviews and the license expiry watchlist.

// expiryWindowDays is the default look-ahead for the expiring-licenses view.
const expiryWindowDays = 90

// SupervisorDepartments renders the department list.
// GET /supervisor.
func (h *Handlers) SupervisorDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Backend.ListDepartments(r.Context())
	if h.HandleBackendError(w, r, err) {
		return
	}
	data := &PageData{Title: "Departments", Data: departments}
	if err != nil {
		data.Error = apperrors.UserMessage(err)
	}
	h.renderPage(w, r, "supervisor_departments", data)
}

// departmentOverview is the view model for one department's overview page.
type departmentOverview struct {
	DeptID    int64
	Installed []backend.Software
	Computers []backend.Computer
}

// SupervisorDepartmentOverview renders one department's assigned computers
// and installed software, fetched concurrently.
// GET /supervisor/departments/{id}.
func (h *Handlers) SupervisorDepartmentOverview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	view := departmentOverview{DeptID: id}
	data := &PageData{Title: "Department overview"}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		installed, err := h.Backend.ListInstalledSoftwareByDepartment(ctx, id)
		view.Installed = installed
		return err
	})
	g.Go(func() error {
		computers, err := h.Backend.ListAssignedComputersByDepartment(ctx, id)
		view.Computers = computers
		return err
	})
	if err := g.Wait(); err != nil {
		if h.HandleBackendError(w, r, err) {
			return
		}
		data.Error = apperrors.UserMessage(err)
	}

	data.Data = view
	h.renderPage(w, r, "supervisor_department", data)
}

// expiringView carries the expiry watchlist and its date window.
type expiringView struct {
	StartDate string
	EndDate   string
	Licenses  []backend.License
}

// SupervisorExpiringLicenses renders licenses whose end date falls in the
// requested window, defaulting to the next 90 days.
// GET /supervisor/licenses/expiring?start_date=&end_date=.
func (h *Handlers) SupervisorExpiringLicenses(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start_date")
	end := r.URL.Query().Get("end_date")
	if start == "" {
		start = time.Now().Format("2006-01-02")
	}
	if end == "" {
		end = time.Now().AddDate(0, 0, expiryWindowDays).Format("2006-01-02")
	}

	licenses, err := h.Backend.ListExpiringLicenses(r.Context(), start, end)
	if h.HandleBackendError(w, r, err) {
		return
	}
	data := &PageData{
		Title: "Expiring licenses",
		Data:  expiringView{StartDate: start, EndDate: end, Licenses: licenses},
	}
	if err != nil {
		data.Error = apperrors.UserMessage(err)
	}
	h.renderPage(w, r, "supervisor_expiring", data)
}
