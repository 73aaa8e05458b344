package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListLicenses returns all licenses.
func (c *Client) ListLicenses(ctx context.Context) ([]License, error) {
	var licenses []License
	err := c.do(ctx, call{method: http.MethodGet, path: "/licenses", out: &licenses})
	return licenses, err
}

// CreateLicenseInput carries the fields for a new license.
type CreateLicenseInput struct {
	SoftwareID   int64
	VendorID     int64
	StartDate    string
	EndDate      string
	PricePerUnit float64
}

// CreateLicense registers a license.
func (c *Client) CreateLicense(ctx context.Context, in CreateLicenseInput) (License, error) {
	q := url.Values{}
	q.Set("software_id", strconv.FormatInt(in.SoftwareID, 10))
	q.Set("vendor_id", strconv.FormatInt(in.VendorID, 10))
	q.Set("start_date", in.StartDate)
	q.Set("end_date", in.EndDate)
	q.Set("price_per_unit", strconv.FormatFloat(in.PricePerUnit, 'f', -1, 64))

	var lic License
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/licenses",
		query:  q,
		expect: http.StatusCreated,
		out:    &lic,
	})
	return lic, err
}

// ListExpiringLicenses returns licenses whose end date falls in the window.
func (c *Client) ListExpiringLicenses(ctx context.Context, startDate, endDate string) ([]License, error) {
	q := url.Values{}
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)

	var licenses []License
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/licenses/expiring",
		query:  q,
		out:    &licenses,
	})
	return licenses, err
}
