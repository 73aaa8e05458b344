package backend

import (
	"context"
	"net/http"
	"net/url"
)

// Report rows come back with report-specific column sets, so they are
// decoded generically and rendered as-is.

func (c *Client) reportRows(ctx context.Context, path, date string) ([]ReportRow, error) {
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}
	var rows []ReportRow
	err := c.do(ctx, call{method: http.MethodGet, path: path, query: query, out: &rows})
	return rows, err
}

// ReportInstalledSoftware returns the installed-software report as of the
// given date (YYYY-MM-DD, empty for today).
func (c *Client) ReportInstalledSoftware(ctx context.Context, date string) ([]ReportRow, error) {
	return c.reportRows(ctx, "/reports/installedSoftware", date)
}

// ReportCountSoftwareLicenses returns license counts per software title.
func (c *Client) ReportCountSoftwareLicenses(ctx context.Context, date string) ([]ReportRow, error) {
	return c.reportRows(ctx, "/reports/countSoftwareLicenses", date)
}

// ReportCountDepartmentsComputers returns computer counts per department.
func (c *Client) ReportCountDepartmentsComputers(ctx context.Context, date string) ([]ReportRow, error) {
	return c.reportRows(ctx, "/reports/countDepartmentsComputers", date)
}
