package httpx

import (
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/itamlab/assetview-ui/internal/backend"
	apperrors "github.com/itamlab/assetview-ui/internal/errors"
)

// Manager area: inventory, assignments, the software catalog, licenses,
// vendors, installations and reports.

// ManagerComputers renders the computer inventory with the registration form.
// GET /manager.
func (h *Handlers) ManagerComputers(w http.ResponseWriter, r *http.Request) {
	h.renderManagerComputers(w, r, &PageData{Title: "Computers"})
}

func (h *Handlers) renderManagerComputers(w http.ResponseWriter, r *http.Request, data *PageData) {
	computers, err := h.Backend.ListComputers(r.Context())
	if h.HandleBackendError(w, r, err) {
		return
	}
	if err != nil {
		data.Error = apperrors.UserMessage(err)
	}
	data.Data = computers
	h.renderPage(w, r, "manager_computers", data)
}

// ManagerCreateComputer registers a computer. A duplicate inventory number
// comes back as a conflict and is shown inline.
// POST /manager/computers.
func (h *Handlers) ManagerCreateComputer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	in := backend.CreateComputerInput{
		InventoryNumber: r.PostFormValue("inventory_number"),
		ComputerType:    r.PostFormValue("computer_type"),
		PurchaseDate:    r.PostFormValue("purchase_date"),
		Status:          r.PostFormValue("status"),
	}

	if _, err := h.Backend.CreateComputer(r.Context(), in); err != nil {
		if h.HandleBackendError(w, r, err) {
			return
		}
		h.renderManagerComputers(w, r, &PageData{
			Title: "Computers",
			Error: apperrors.UserMessage(err),
			Form: map[string]string{
				"inventory_number": in.InventoryNumber,
				"computer_type":    in.ComputerType,
				"purchase_date":    in.PurchaseDate,
				"status":           in.Status,
			},
		})
		return
	}
	RedirectWithNotice(w, r, "/manager", "Computer added")
}

// ManagerDeleteComputer removes a computer from the inventory.
// POST /manager/computers/{id}/delete.
func (h *Handlers) ManagerDeleteComputer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.Backend.DeleteComputer(r.Context(), id); err != nil {
		if h.HandleBackendError(w, r, err) {
			return
		}
		h.renderManagerComputers(w, r, &PageData{Title: "Computers", Error: apperrors.UserMessage(err)})
		return
	}
	RedirectWithNotice(w, r, "/manager", "Computer deleted")
}

// computerDetailView is the view model for one computer's detail page.
type computerDetailView struct {
	ComputerID  int64
	Installed   []backend.Software
	Departments []backend.Department
}

// ManagerComputerDetail renders one computer with its installed software and
// the assignment form. The two backend fetches run concurrently.
// GET /manager/computers/{id}.
func (h *Handlers) ManagerComputerDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.renderManagerComputerDetail(w, r, id, &PageData{Title: "Computer"})
}

func (h *Handlers) renderManagerComputerDetail(w http.ResponseWriter, r *http.Request, id int64, data *PageData) {
	view := computerDetailView{ComputerID: id}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		installed, err := h.Backend.ListInstalledSoftwareByComputer(ctx, id)
		view.Installed = installed
		return err
	})
	g.Go(func() error {
		departments, err := h.Backend.ListDepartments(ctx)
		view.Departments = departments
		return err
	})
	if err := g.Wait(); err != nil {
		if h.HandleBackendError(w, r, err) {
			return
		}
		data.Error = apperrors.UserMessage(err)
	}

	data.Data = view
	h.renderPage(w, r, "manager_computer_detail", data)
}

// ManagerCreateAssignment assigns a computer to a department.
// POST /manager/computers/{id}/assignments.
func (h *Handlers) ManagerCreateAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	deptID, _ := strconv.ParseInt(r.PostFormValue("dept_id"), 10, 64)
	in := backend.CreateAssignmentInput{
		ComputerID: id,
		DeptID:     deptID,
		DocNumber:  r.PostFormValue("doc_number"),
		DocDate:    r.PostFormValue("doc_date"),
		DocType:    r.PostFormValue("doc_type"),
		StartDate:  r.PostFormValue("start_date"),
		EndDate:    r.PostFormValue("end_date"),
	}

	if err := h.Backend.CreateAssignment(r.Context(), in); err != nil {
		if h.HandleBackendError(w, r, err) {
			return
		}
		h.renderManagerComputerDetail(w, r, id, &PageData{
			Title: "Computer",
			Error: apperrors.UserMessage(err),
		})
		return
	}
	RedirectWithNotice(w, r, "/manager/computers/"+strconv.FormatInt(id, 10), "Assignment recorded")
}

// softwareCatalogView pairs the catalog with the type dictionary for the
// create form's type selector.
type softwareCatalogView struct {
	Software []backend.Software
	Types    []backend.SoftwareType
}

// ManagerSoftware renders the software catalog.
// GET /manager/software.
func (h *Handlers) ManagerSoftware(w http.ResponseWriter, r *http.Request) {
	h.renderManagerSoftware(w, r, &PageData{Title: "Software catalog"})
}

func (h *Handlers) renderManagerSoftware(w http.ResponseWriter, r *http.Request, data *PageData) {
	var view softwareCatalogView

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		software, err := h.Backend.ListSoftware(ctx)
		view.Software = software
		return err
	})
	g.Go(func() error {
		types, err := h.Backend.ListSoftwareTypes(ctx)
		view.Types = types
		return err
	})
	if err := g.Wait(); err != nil {
		if h.HandleBackendError(w, r, err) {
			return
		}
		data.Error = apperrors.UserMessage(err)
	}

	data.Data = view
	h.renderPage(w, r, "manager_software", data)
}

// ManagerCreateSoftware adds a catalog entry. A duplicate code is a conflict
// shown inline.
// POST /manager/software.
func (h *Handlers) ManagerCreateSoftware(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	swTypeID, _ := strconv.ParseInt(r.PostFormValue("sw_type_id"), 10, 64)
	in := backend.CreateSoftwareInput{
		SwTypeID:     swTypeID,
		Code:         r.PostFormValue("code"),
		Name:         r.PostFormValue("name"),
		ShortName:    r.PostFormValue("short_name"),
		Manufacturer: r.PostFormValue("manufacturer"),
	}

	if _, err := h.Backend.CreateSoftware(r.Context(), in); err != nil {
		if h.HandleBackendError(w, r, err) {
			return
		}
		h.renderManagerSoftware(w, r, &PageData{
			Title: "Software catalog",
			Error: apperrors.UserMessage(err),
			Form: map[string]string{
				"sw_type_id":   r.PostFormValue("sw_type_id"),
				"code":         in.Code,
				"name":         in.Name,
				"short_name":   in.ShortName,
				"manufacturer": in.Manufacturer,
			},
		})
		return
	}
	RedirectWithNotice(w, r, "/manager/software", "Software added")
}

// licensesView pairs licenses with the selectors the create form needs.
type licensesView struct {
	Licenses []backend.License
	Software []backend.Software
	Vendors  []backend.Vendor
}

// ManagerLicenses renders the license register.
// GET /manager/licenses.
func (h *Handlers) ManagerLicenses(w http.ResponseWriter, r *http.Request) {
	h.renderManagerLicenses(w, r, &PageData{Title: "Licenses"})
}

func (h *Handlers) renderManagerLicenses(w http.ResponseWriter, r *http.Request, data *PageData) {
	var view licensesView

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		licenses, err := h.Backend.ListLicenses(ctx)
		view.Licenses = licenses
		return err
	})
	g.Go(func() error {
		software, err := h.Backend.ListSoftware(ctx)
		view.Software = software
		return err
	})
	g.Go(func() error {
		vendors, err := h.Backend.ListVendors(ctx)
		view.Vendors = vendors
		return err
	})
	if err := g.Wait(); err != nil {
		if h.HandleBackendError(w, r, err) {
			return
		}
		data.Error = apperrors.UserMessage(err)
	}

	data.Data = view
	h.renderPage(w, r, "manager_licenses", data)
}

// ManagerCreateLicense registers a license.
// POST /manager/licenses.
func (h *Handlers) ManagerCreateLicense(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	softwareID, _ := strconv.ParseInt(r.PostFormValue("software_id"), 10, 64)
	vendorID, _ := strconv.ParseInt(r.PostFormValue("vendor_id"), 10, 64)
	price, _ := strconv.ParseFloat(r.PostFormValue("price_per_unit"), 64)
	in := backend.CreateLicenseInput{
		SoftwareID:   softwareID,
		VendorID:     vendorID,
		StartDate:    r.PostFormValue("start_date"),
		EndDate:      r.PostFormValue("end_date"),
		PricePerUnit: price,
	}

	if _, err := h.Backend.CreateLicense(r.Context(), in); err != nil {
		if h.HandleBackendError(w, r, err) {
			return
		}
		h.renderManagerLicenses(w, r, &PageData{Title: "Licenses", Error: apperrors.UserMessage(err)})
		return
	}
	RedirectWithNotice(w, r, "/manager/licenses", "License added")
}

// ManagerVendors renders the vendor register.
// GET /manager/vendors.
func (h *Handlers) ManagerVendors(w http.ResponseWriter, r *http.Request) {
	h.renderManagerVendors(w, r, &PageData{Title: "Vendors"})
}

func (h *Handlers) renderManagerVendors(w http.ResponseWriter, r *http.Request, data *PageData) {
	vendors, err := h.Backend.ListVendors(r.Context())
	if h.HandleBackendError(w, r, err) {
		return
	}
	if err != nil {
		data.Error = apperrors.UserMessage(err)
	}
	data.Data = vendors
	h.renderPage(w, r, "manager_vendors", data)
}

// ManagerCreateVendor registers a vendor.
// POST /manager/vendors.
func (h *Handlers) ManagerCreateVendor(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	in := backend.CreateVendorInput{
		Name:    r.PostFormValue("name"),
		Address: r.PostFormValue("address"),
		Phone:   r.PostFormValue("phone"),
		Website: r.PostFormValue("website"),
	}

	if _, err := h.Backend.CreateVendor(r.Context(), in); err != nil {
		if h.HandleBackendError(w, r, err) {
			return
		}
		h.renderManagerVendors(w, r, &PageData{
			Title: "Vendors",
			Error: apperrors.UserMessage(err),
			Form: map[string]string{
				"name":    in.Name,
				"address": in.Address,
				"phone":   in.Phone,
				"website": in.Website,
			},
		})
		return
	}
	RedirectWithNotice(w, r, "/manager/vendors", "Vendor added")
}

// installationsView pairs installations with the selectors the record form
// needs.
type installationsView struct {
	Installations []backend.Installation
	Licenses      []backend.License
	Computers     []backend.Computer
}

// ManagerInstallations renders the installation records.
// GET /manager/installations.
func (h *Handlers) ManagerInstallations(w http.ResponseWriter, r *http.Request) {
	h.renderManagerInstallations(w, r, &PageData{Title: "Installations"})
}

func (h *Handlers) renderManagerInstallations(w http.ResponseWriter, r *http.Request, data *PageData) {
	var view installationsView

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		installations, err := h.Backend.ListInstallations(ctx)
		view.Installations = installations
		return err
	})
	g.Go(func() error {
		licenses, err := h.Backend.ListLicenses(ctx)
		view.Licenses = licenses
		return err
	})
	g.Go(func() error {
		computers, err := h.Backend.ListComputers(ctx)
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
	h.renderPage(w, r, "manager_installations", data)
}

// ManagerCreateInstallation records a license installed on a computer.
// POST /manager/installations.
func (h *Handlers) ManagerCreateInstallation(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	licenseID, _ := strconv.ParseInt(r.PostFormValue("license_id"), 10, 64)
	computerID, _ := strconv.ParseInt(r.PostFormValue("computer_id"), 10, 64)
	in := backend.CreateInstallationInput{
		LicenseID:   licenseID,
		ComputerID:  computerID,
		InstallDate: r.PostFormValue("install_date"),
	}

	if _, err := h.Backend.CreateInstallation(r.Context(), in); err != nil {
		if h.HandleBackendError(w, r, err) {
			return
		}
		h.renderManagerInstallations(w, r, &PageData{Title: "Installations", Error: apperrors.UserMessage(err)})
		return
	}
	RedirectWithNotice(w, r, "/manager/installations", "Installation recorded")
}

// reportsView carries the three standard reports for one reporting date.
type reportsView struct {
	Date                     string
	InstalledSoftware        []backend.ReportRow
	SoftwareLicenseCounts    []backend.ReportRow
	DepartmentComputerCounts []backend.ReportRow
}

// ManagerReports renders the three standard reports as of a date, fetched
// concurrently.
// GET /manager/reports?date=YYYY-MM-DD.
func (h *Handlers) ManagerReports(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	view := reportsView{Date: date}
	data := &PageData{Title: "Reports"}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		rows, err := h.Backend.ReportInstalledSoftware(ctx, date)
		view.InstalledSoftware = rows
		return err
	})
	g.Go(func() error {
		rows, err := h.Backend.ReportCountSoftwareLicenses(ctx, date)
		view.SoftwareLicenseCounts = rows
		return err
	})
	g.Go(func() error {
		rows, err := h.Backend.ReportCountDepartmentsComputers(ctx, date)
		view.DepartmentComputerCounts = rows
		return err
	})
	if err := g.Wait(); err != nil {
		if h.HandleBackendError(w, r, err) {
			return
		}
		data.Error = apperrors.UserMessage(err)
	}

	data.Data = view
	h.renderPage(w, r, "manager_reports", data)
}
