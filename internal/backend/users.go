package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	domainauth "github.com/itamlab/assetview-ui/internal/domain/auth"
)

// ListUsers returns all accounts.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	err := c.do(ctx, call{method: http.MethodGet, path: "/users", out: &users})
	return users, err
}

// CreateUserInput carries the fields for a new account.
type CreateUserInput struct {
	Username string
	Password string
	Role     domainauth.Role
	FullName string
}

// CreateUser creates an account; the backend answers 201 with the created
// resource.
func (c *Client) CreateUser(ctx context.Context, in CreateUserInput) (User, error) {
	q := url.Values{}
	q.Set("username", in.Username)
	q.Set("password", in.Password)
	q.Set("role", string(in.Role))
	q.Set("full_name", in.FullName)

	var user User
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/users",
		query:  q,
		expect: http.StatusCreated,
		out:    &user,
	})
	return user, err
}

// UpdateUserInput carries the mutable account fields.
type UpdateUserInput struct {
	UserID   int64
	Username string
	Role     domainauth.Role
	FullName string
}

// UpdateUser updates an account.
func (c *Client) UpdateUser(ctx context.Context, in UpdateUserInput) (User, error) {
	q := url.Values{}
	q.Set("username", in.Username)
	q.Set("role", string(in.Role))
	q.Set("full_name", in.FullName)

	var user User
	err := c.do(ctx, call{
		method: http.MethodPut,
		path:   fmt.Sprintf("/users/%d", in.UserID),
		query:  q,
		out:    &user,
	})
	return user, err
}

// DeleteUser removes an account; the backend answers 204.
func (c *Client) DeleteUser(ctx context.Context, userID int64) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		path:   fmt.Sprintf("/users/%d", userID),
		expect: http.StatusNoContent,
	})
}
