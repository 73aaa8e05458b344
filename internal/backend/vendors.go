package backend

import (
	"context"
	"net/http"
	"net/url"
)

// ListVendors returns all vendors.
func (c *Client) ListVendors(ctx context.Context) ([]Vendor, error) {
	var vendors []Vendor
	err := c.do(ctx, call{method: http.MethodGet, path: "/vendors", out: &vendors})
	return vendors, err
}

// CreateVendorInput carries the fields for a new vendor.
type CreateVendorInput struct {
	Name    string
	Address string
	Phone   string
	Website string
}

// CreateVendor registers a vendor.
func (c *Client) CreateVendor(ctx context.Context, in CreateVendorInput) (Vendor, error) {
	q := url.Values{}
	q.Set("name", in.Name)
	q.Set("address", in.Address)
	q.Set("phone", in.Phone)
	q.Set("website", in.Website)

	var vendor Vendor
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/vendors",
		query:  q,
		expect: http.StatusCreated,
		out:    &vendor,
	})
	return vendor, err
}
