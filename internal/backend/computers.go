package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListComputers returns the computer inventory.
func (c *Client) ListComputers(ctx context.Context) ([]Computer, error) {
	var computers []Computer
	err := c.do(ctx, call{method: http.MethodGet, path: "/computers", out: &computers})
	return computers, err
}

// CreateComputerInput carries the fields for a new inventory item.
type CreateComputerInput struct {
	InventoryNumber string
	ComputerType    string
	PurchaseDate    string
	Status          string
}

// CreateComputer registers a computer; status defaults to "active" when empty.
func (c *Client) CreateComputer(ctx context.Context, in CreateComputerInput) (Computer, error) {
	status := in.Status
	if status == "" {
		status = "active"
	}

	q := url.Values{}
	q.Set("inventory_number", in.InventoryNumber)
	q.Set("computer_type", in.ComputerType)
	q.Set("purchase_date", in.PurchaseDate)
	q.Set("status", status)

	var computer Computer
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/computers",
		query:  q,
		expect: http.StatusCreated,
		out:    &computer,
	})
	return computer, err
}

// DeleteComputer removes a computer; the backend answers 204.
func (c *Client) DeleteComputer(ctx context.Context, computerID int64) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		path:   fmt.Sprintf("/computers/%d", computerID),
		expect: http.StatusNoContent,
	})
}

// ListInstalledSoftwareByComputer returns software installed on one computer.
func (c *Client) ListInstalledSoftwareByComputer(ctx context.Context, computerID int64) ([]Software, error) {
	var software []Software
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   fmt.Sprintf("/computers/installedSoftware/%d", computerID),
		out:    &software,
	})
	return software, err
}

// CreateAssignmentInput carries the fields of a computer-to-department
// assignment document.
type CreateAssignmentInput struct {
	ComputerID int64
	DeptID     int64
	DocNumber  string
	DocDate    string
	DocType    string
	StartDate  string
	EndDate    string
}

// CreateAssignment assigns a computer to a department.
func (c *Client) CreateAssignment(ctx context.Context, in CreateAssignmentInput) error {
	q := url.Values{}
	q.Set("computer_id", strconv.FormatInt(in.ComputerID, 10))
	q.Set("dept_id", strconv.FormatInt(in.DeptID, 10))
	q.Set("doc_number", in.DocNumber)
	q.Set("doc_date", in.DocDate)
	q.Set("doc_type", in.DocType)
	q.Set("start_date", in.StartDate)
	q.Set("end_date", in.EndDate)

	return c.do(ctx, call{
		method: http.MethodPost,
		path:   "/computerAssignments",
		query:  q,
		expect: http.StatusCreated,
	})
}
