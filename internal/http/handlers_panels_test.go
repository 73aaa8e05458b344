package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itamlab/assetview-ui/internal/backend"
	domainauth "github.com/itamlab/assetview-ui/internal/domain/auth"
)

func TestAdminUsersPage(t *testing.T) {
	h, _ := newTestHandlers(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users", r.URL.Path)
		_, _ = w.Write([]byte(`[{"user_id":1,"username":"pat","full_name":"Pat Example","role":"admin"}]`))
	})

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r = r.WithContext(SetSessionInContext(r.Context(), authedSession(domainauth.RoleAdmin)))
	rec := httptest.NewRecorder()
	h.AdminUsers(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pat Example")
}

func TestAdminUsersPageShowsNoticeAfterRedirect(t *testing.T) {
	h, _ := newTestHandlers(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	r := httptest.NewRequest(http.MethodGet, "/admin?notice=Account+created", nil)
	r = r.WithContext(SetSessionInContext(r.Context(), authedSession(domainauth.RoleAdmin)))
	rec := httptest.NewRecorder()
	h.AdminUsers(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "flash-notice")
	assert.Contains(t, rec.Body.String(), "Account created")
}

func TestAdminCreateUser(t *testing.T) {
	t.Run("success redirects back to the panel", func(t *testing.T) {
		h, _ := newTestHandlers(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"user_id":2,"username":"sam","role":"manager"}`))
				return
			}
			_, _ = w.Write([]byte(`[]`))
		})

		rec := httptest.NewRecorder()
		h.AdminCreateUser(rec, postForm("/admin/users", url.Values{
			"username": {"sam"},
			"password": {"pw"},
			"role":     {"manager"},
		}))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin?notice=Account+created", rec.Header().Get("Location"))
	})

	t.Run("conflict renders inline without redirect", func(t *testing.T) {
		h, _ := newTestHandlers(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(`{"message":"username already taken"}`))
				return
			}
			_, _ = w.Write([]byte(`[]`))
		})

		r := postForm("/admin/users", url.Values{"username": {"sam"}, "password": {"pw"}, "role": {"manager"}})
		r = r.WithContext(SetSessionInContext(r.Context(), authedSession(domainauth.RoleAdmin)))
		rec := httptest.NewRecorder()
		h.AdminCreateUser(rec, r)

		require.Equal(t, http.StatusOK, rec.Code, "conflicts stay on the page")
		assert.Contains(t, rec.Body.String(), "username already taken")
		assert.Contains(t, rec.Body.String(), `value="sam"`, "submitted values echoed back")
	})
}

func TestManagerCreateComputerSessionExpiry(t *testing.T) {
	h, store := newTestHandlers(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	r := postForm("/manager/computers", url.Values{
		"inventory_number": {"INV-9"},
		"computer_type":    {"desktop"},
	})
	id := withSession(t, store, r, authedSession(domainauth.RoleManager))
	r = r.WithContext(backend.WithSessionID(r.Context(), id))

	rec := httptest.NewRecorder()
	h.ManagerCreateComputer(rec, r)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/login?redirect=")
	assert.False(t, store.Read(context.Background(), id).IsAuthenticated(),
		"401 from the backend invalidates the stored session")
}

func TestSupervisorDepartmentOverview(t *testing.T) {
	h, _ := newTestHandlers(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/departments/installedSoftware/7":
			_, _ = w.Write([]byte(`[{"software_id":1,"code":"ED-1","name":"Editor","manufacturer":"Acme"}]`))
		case "/departments/assignedComputers/7":
			_, _ = w.Write([]byte(`[{"computer_id":3,"inventory_number":"INV-3","computer_type":"laptop","status":"active"}]`))
		default:
			t.Errorf("unexpected backend path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	r := httptest.NewRequest(http.MethodGet, "/supervisor/departments/7", nil)
	r.SetPathValue("id", "7")
	r = r.WithContext(SetSessionInContext(r.Context(), authedSession(domainauth.RoleSupervisor)))

	rec := httptest.NewRecorder()
	h.SupervisorDepartmentOverview(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Editor")
	assert.Contains(t, body, "INV-3")
}

func TestManagerReports(t *testing.T) {
	h, _ := newTestHandlers(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "2026-03-01", r.URL.Query().Get("date"))
		switch r.URL.Path {
		case "/reports/installedSoftware":
			_, _ = w.Write([]byte(`[{"software":"Editor","computers":4}]`))
		case "/reports/countSoftwareLicenses":
			_, _ = w.Write([]byte(`[{"software":"Editor","licenses":2}]`))
		case "/reports/countDepartmentsComputers":
			_, _ = w.Write([]byte(`[{"department":"IT","computers":10}]`))
		default:
			t.Errorf("unexpected backend path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	r := httptest.NewRequest(http.MethodGet, "/manager/reports?date=2026-03-01", nil)
	r = r.WithContext(SetSessionInContext(r.Context(), authedSession(domainauth.RoleManager)))

	rec := httptest.NewRecorder()
	h.ManagerReports(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Editor")
	assert.Contains(t, body, "IT")
}

func TestSupervisorExpiringLicensesDefaultsWindow(t *testing.T) {
	var gotStart, gotEnd string
	h, _ := newTestHandlers(t, func(w http.ResponseWriter, r *http.Request) {
		gotStart = r.URL.Query().Get("start_date")
		gotEnd = r.URL.Query().Get("end_date")
		_, _ = w.Write([]byte(`[]`))
	})

	r := httptest.NewRequest(http.MethodGet, "/supervisor/licenses/expiring", nil)
	r = r.WithContext(SetSessionInContext(r.Context(), authedSession(domainauth.RoleSupervisor)))

	rec := httptest.NewRecorder()
	h.SupervisorExpiringLicenses(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, gotStart)
	assert.NotEmpty(t, gotEnd)
	assert.Less(t, gotStart, gotEnd)
}
