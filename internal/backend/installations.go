package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListInstallations returns all installation records.
func (c *Client) ListInstallations(ctx context.Context) ([]Installation, error) {
	var installations []Installation
	err := c.do(ctx, call{method: http.MethodGet, path: "/installations", out: &installations})
	return installations, err
}

// CreateInstallationInput carries the fields for a new installation record.
type CreateInstallationInput struct {
	LicenseID   int64
	ComputerID  int64
	InstallDate string
}

// CreateInstallation records a license installed on a computer.
func (c *Client) CreateInstallation(ctx context.Context, in CreateInstallationInput) (Installation, error) {
	q := url.Values{}
	q.Set("license_id", strconv.FormatInt(in.LicenseID, 10))
	q.Set("computer_id", strconv.FormatInt(in.ComputerID, 10))
	q.Set("install_date", in.InstallDate)

	var inst Installation
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/installations",
		query:  q,
		expect: http.StatusCreated,
		out:    &inst,
	})
	return inst, err
}
