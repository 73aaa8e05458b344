package backend

import (
	domainauth "github.com/itamlab/assetview-ui/internal/domain/auth"
)

// Entity payloads mirror the backend's JSON field names. Dates travel as the
// backend's own string serialization; this client does not reinterpret them.

// LoginResult is the backend's response to a successful credential login.
type LoginResult struct {
	Token    string          `json:"token"`
	UserID   int64           `json:"user_id"`
	Username string          `json:"username"`
	FullName string          `json:"full_name"`
	Role     domainauth.Role `json:"role"`
}

// Claim converts the login result into the cached user claim.
func (r LoginResult) Claim() domainauth.UserClaim {
	return domainauth.UserClaim{
		UserID:   r.UserID,
		Username: r.Username,
		FullName: r.FullName,
		Role:     r.Role,
	}
}

// User is an account managed in the admin area.
type User struct {
	UserID   int64           `json:"user_id"`
	Username string          `json:"username"`
	FullName string          `json:"full_name"`
	Role     domainauth.Role `json:"role"`
}

// AuditLog is one audit-trail entry.
type AuditLog struct {
	LogID      int64  `json:"log_id"`
	ActionTime string `json:"action_time"`
	Username   string `json:"username"`
	Action     string `json:"action"`
}

// Department is an organizational unit computers are assigned to.
type Department struct {
	DeptID   int64  `json:"dept_id"`
	DeptName string `json:"dept_name"`
}

// Computer is an inventory item. DeptName is populated on department-scoped
// listings.
type Computer struct {
	ComputerID      int64  `json:"computer_id"`
	InventoryNumber string `json:"inventory_number"`
	ComputerType    string `json:"computer_type"`
	PurchaseDate    string `json:"purchase_date"`
	Status          string `json:"status"`
	DeptName        string `json:"dept_name,omitempty"`
}

// SoftwareType is a catalog category.
type SoftwareType struct {
	SwTypeID int64  `json:"sw_type_id"`
	Name     string `json:"name"`
}

// Software is a catalog entry.
type Software struct {
	SoftwareID   int64  `json:"software_id"`
	SwTypeID     int64  `json:"sw_type_id"`
	SwTypeName   string `json:"sw_type_name,omitempty"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	ShortName    string `json:"short_name"`
	Manufacturer string `json:"manufacturer"`
}

// Vendor is a license supplier.
type Vendor struct {
	VendorID int64  `json:"vendor_id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
}

// License grants installations of a software title. SoftwareName and
// VendorName are populated on listings.
type License struct {
	LicenseID    int64   `json:"license_id"`
	SoftwareID   int64   `json:"software_id"`
	SoftwareName string  `json:"software_name,omitempty"`
	VendorID     int64   `json:"vendor_id"`
	VendorName   string  `json:"vendor_name,omitempty"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	PricePerUnit float64 `json:"price_per_unit"`
}

// Installation records a license installed on a computer.
type Installation struct {
	InstallationID int64  `json:"installation_id"`
	LicenseID      int64  `json:"license_id"`
	ComputerID     int64  `json:"computer_id"`
	InstallDate    string `json:"install_date"`
}

// ReportRow is one row of a report. Report schemas are owned by the backend
// and rendered generically, so rows pass through untyped.
type ReportRow map[string]any
