package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const (
	defaultAuditLogLimit = 50
	maxAuditLogLimit     = 500
)

// ListAuditLogs returns the most recent audit log entries, newest first.
// A non-positive limit falls back to the default, and oversized limits
// are clamped.
func (c *Client) ListAuditLogs(ctx context.Context, limit int) ([]AuditLog, error) {
	if limit <= 0 {
		limit = defaultAuditLogLimit
	}
	if limit > maxAuditLogLimit {
		limit = maxAuditLogLimit
	}
	var logs []AuditLog
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/auditLogs",
		query:  url.Values{"limit": {strconv.Itoa(limit)}},
		out:    &logs,
	})
	return logs, err
}
