package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itamlab/assetview-ui/internal/adapters/memory"
	domainauth "github.com/itamlab/assetview-ui/internal/domain/auth"
	apperrors "github.com/itamlab/assetview-ui/internal/errors"
)

const testSessionID = "sess-1"

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *memory.SessionStore, context.Context) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := memory.NewSessionStore()
	client, err := NewClient(Options{BaseURL: srv.URL, Sessions: store})
	require.NoError(t, err)

	ctx := WithSessionID(context.Background(), testSessionID)
	require.NoError(t, store.Save(ctx, testSessionID, domainauth.Session{
		Token: "tok-abc",
		User:  &domainauth.UserClaim{UserID: 1, Username: "alice", Role: domainauth.RoleAdmin},
	}))
	return client, store, ctx
}

func TestNewClientValidation(t *testing.T) {
	store := memory.NewSessionStore()

	_, err := NewClient(Options{Sessions: store})
	assert.True(t, apperrors.IsValidation(err))

	_, err = NewClient(Options{BaseURL: "http://localhost:8000"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = NewClient(Options{BaseURL: "http://localhost:8000", Sessions: store, ErrorMessageExpr: "not a [valid expr"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestNewClientTimeout(t *testing.T) {
	store := memory.NewSessionStore()

	client, err := NewClient(Options{BaseURL: "http://localhost:8000", Sessions: store})
	require.NoError(t, err)
	assert.Equal(t, defaultTimeout, client.hc.Timeout)

	client, err = NewClient(Options{BaseURL: "http://localhost:8000", Sessions: store, Timeout: 3 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, client.hc.Timeout)
}

func TestClientSendsBearerReadAtCallTime(t *testing.T) {
	var gotAuth string
	client, store, ctx := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	_, err := client.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)

	// Replacing the stored token is honored on the next call without
	// rebuilding the client.
	require.NoError(t, store.Save(ctx, testSessionID, domainauth.Session{Token: "tok-new"}))
	_, err = client.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-new", gotAuth)
}

func TestClientUnauthorizedClearsSession(t *testing.T) {
	client, store, ctx := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.ListComputers(ctx)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.False(t, store.Read(ctx, testSessionID).IsAuthenticated(), "401 must invalidate the stored session")
}

func TestClientForbiddenMessages(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		wantMessage string
	}{
		{"json message field", `{"message":"no access to reports"}`, "application/json", "no access to reports"},
		{"plain text body", "nope", "text/plain", "nope"},
		{"json without message field", `{"detail":"x"}`, "application/json", `{"detail":"x"}`},
		{"empty body", "", "", "Insufficient permissions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, store, ctx := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(tt.body))
			})

			_, err := client.ListAuditLogs(ctx, 10)
			require.True(t, apperrors.IsForbidden(err))
			assert.Equal(t, tt.wantMessage, apperrors.UserMessage(err))
			assert.True(t, store.Read(ctx, testSessionID).IsAuthenticated(), "403 must not touch the session")
		})
	}
}

func TestClientConflictOnWrite(t *testing.T) {
	client, store, ctx := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"inventory number already in use"}`))
	})

	_, err := client.CreateComputer(ctx, CreateComputerInput{InventoryNumber: "INV-1", ComputerType: "desktop"})
	require.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "inventory number already in use", apperrors.UserMessage(err))
	assert.True(t, store.Read(ctx, testSessionID).IsAuthenticated(), "409 must not touch the session")
}

func TestClientConflictOnReadIsRequestFailure(t *testing.T) {
	client, _, ctx := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	_, err := client.ListComputers(ctx)
	assert.False(t, apperrors.IsConflict(err))
	assert.True(t, apperrors.IsRequestFailed(err))
}

func TestClientRequestFailedSynthesizesMessage(t *testing.T) {
	client, _, ctx := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.ListVendors(ctx)
	require.True(t, apperrors.IsRequestFailed(err))
	assert.Equal(t, "GET /vendors failed with status 502", apperrors.UserMessage(err))
}

func TestClientExpectedStatusMismatch(t *testing.T) {
	t.Run("create answered with 200", func(t *testing.T) {
		client, _, ctx := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"vendor_id":1,"name":"Acme"}`))
		})
		_, err := client.CreateVendor(ctx, CreateVendorInput{Name: "Acme"})
		assert.True(t, apperrors.IsRequestFailed(err))
	})

	t.Run("delete answered with 200", func(t *testing.T) {
		client, _, ctx := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		err := client.DeleteUser(ctx, 7)
		assert.True(t, apperrors.IsRequestFailed(err))
	})
}

func TestClientCustomErrorMessageExpr(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"detail":"managers only"}}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Options{
		BaseURL:          srv.URL,
		Sessions:         memory.NewSessionStore(),
		ErrorMessageExpr: "error.detail",
	})
	require.NoError(t, err)

	_, err = client.ListLicenses(context.Background())
	require.True(t, apperrors.IsForbidden(err))
	assert.Equal(t, "managers only", apperrors.UserMessage(err))
}

func TestClientMissingSessionSendsNoBearer(t *testing.T) {
	var gotAuth string
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	// No session ID in the context: the store returns the zero session and
	// the request goes out unauthenticated.
	_, err := client.ListDepartments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/login", r.URL.Path)
			assert.Equal(t, "bob", r.URL.Query().Get("username"))
			assert.Equal(t, "s3cret", r.URL.Query().Get("password"))
			assert.Empty(t, r.Header.Get("Authorization"), "login must not carry a bearer token")
			w.Write([]byte(`{"token":"tok-xyz","username":"bob","user_id":2,"role":"manager","full_name":"Bob B"}`))
		})

		res, err := client.Login(context.Background(), "bob", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "tok-xyz", res.Token)
		assert.Equal(t, domainauth.RoleManager, res.Claim().Role)
	})

	t.Run("bad credentials", func(t *testing.T) {
		client, store, ctx := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := client.Login(ctx, "bob", "wrong")
		assert.True(t, apperrors.IsInvalidCredentials(err))
		assert.False(t, apperrors.IsUnauthorized(err))
		assert.True(t, store.Read(ctx, testSessionID).IsAuthenticated(), "login 401 must not clear existing sessions")
	})

	t.Run("response without token", func(t *testing.T) {
		client, _, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"username":"bob"}`))
		})

		_, err := client.Login(context.Background(), "bob", "s3cret")
		assert.True(t, apperrors.IsRequestFailed(err))
	})
}

func TestAuditLogLimitClamping(t *testing.T) {
	var gotLimit string
	client, _, ctx := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`[]`))
	})

	_, err := client.ListAuditLogs(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "50", gotLimit)

	_, err = client.ListAuditLogs(ctx, 10000)
	require.NoError(t, err)
	assert.Equal(t, "500", gotLimit)
}
