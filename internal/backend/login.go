package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/itamlab/assetview-ui/internal/errors"
)

// Login exchanges credentials for a bearer token and user claim. It is the
// one unauthenticated call and deliberately bypasses the do interception
// layer: its 401 means bad credentials, not an expired session, so it must
// not clear the store or trigger a login redirect the caller is already on.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	q := url.Values{}
	q.Set("username", username)
	q.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/login?"+q.Encode(), http.NoBody)
	if err != nil {
		return LoginResult{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build login request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return LoginResult{}, apperrors.Wrap(err, apperrors.ErrCodeRequestFailed, "login request")
	}
	body, readErr := readBody(resp)
	if readErr != nil {
		return LoginResult{}, apperrors.Wrap(readErr, apperrors.ErrCodeRequestFailed, "login: read response")
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return LoginResult{}, apperrors.InvalidCredentials("invalid username or password")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if text := strings.TrimSpace(string(body)); text != "" {
			return LoginResult{}, apperrors.RequestFailed(text)
		}
		return LoginResult{}, apperrors.RequestFailedf("login failed with status %d", resp.StatusCode)
	}

	var result LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return LoginResult{}, apperrors.Wrap(err, apperrors.ErrCodeRequestFailed, "login: decode response")
	}
	if result.Token == "" {
		return LoginResult{}, apperrors.RequestFailed("login response carried no token")
	}
	return result, nil
}
