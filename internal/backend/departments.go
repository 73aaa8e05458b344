package backend

import (
	"context"
	"fmt"
	"net/http"
)

// ListDepartments returns all departments.
func (c *Client) ListDepartments(ctx context.Context) ([]Department, error) {
	var departments []Department
	err := c.do(ctx, call{method: http.MethodGet, path: "/departments", out: &departments})
	return departments, err
}

// ListInstalledSoftwareByDepartment returns software installed on the
// department's computers.
func (c *Client) ListInstalledSoftwareByDepartment(ctx context.Context, deptID int64) ([]Software, error) {
	var software []Software
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   fmt.Sprintf("/departments/installedSoftware/%d", deptID),
		out:    &software,
	})
	return software, err
}

// ListAssignedComputersByDepartment returns computers assigned to the
// department.
func (c *Client) ListAssignedComputersByDepartment(ctx context.Context, deptID int64) ([]Computer, error) {
	var computers []Computer
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   fmt.Sprintf("/departments/assignedComputers/%d", deptID),
		out:    &computers,
	})
	return computers, err
}
