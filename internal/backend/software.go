package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListSoftwareTypes returns the catalog categories.
func (c *Client) ListSoftwareTypes(ctx context.Context) ([]SoftwareType, error) {
	var types []SoftwareType
	err := c.do(ctx, call{method: http.MethodGet, path: "/softwareTypes", out: &types})
	return types, err
}

// CreateSoftwareType adds a catalog category.
func (c *Client) CreateSoftwareType(ctx context.Context, name string) (SoftwareType, error) {
	q := url.Values{}
	q.Set("name", name)

	var st SoftwareType
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/softwareTypes",
		query:  q,
		expect: http.StatusCreated,
		out:    &st,
	})
	return st, err
}

// ListSoftware returns the software catalog.
func (c *Client) ListSoftware(ctx context.Context) ([]Software, error) {
	var software []Software
	err := c.do(ctx, call{method: http.MethodGet, path: "/software", out: &software})
	return software, err
}

// CreateSoftwareInput carries the fields for a new catalog entry.
type CreateSoftwareInput struct {
	SwTypeID     int64
	Code         string
	Name         string
	ShortName    string
	Manufacturer string
}

// CreateSoftware adds a catalog entry.
func (c *Client) CreateSoftware(ctx context.Context, in CreateSoftwareInput) (Software, error) {
	q := url.Values{}
	q.Set("sw_type_id", strconv.FormatInt(in.SwTypeID, 10))
	q.Set("code", in.Code)
	q.Set("name", in.Name)
	q.Set("short_name", in.ShortName)
	q.Set("manufacturer", in.Manufacturer)

	var sw Software
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/software",
		query:  q,
		expect: http.StatusCreated,
		out:    &sw,
	})
	return sw, err
}
