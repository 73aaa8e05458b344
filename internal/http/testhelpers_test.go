package httpx

import (
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	assetview "github.com/itamlab/assetview-ui"
	"github.com/itamlab/assetview-ui/config"
	"github.com/itamlab/assetview-ui/internal/adapters/memory"
	"github.com/itamlab/assetview-ui/internal/backend"
	domainauth "github.com/itamlab/assetview-ui/internal/domain/auth"
)

const testCookieName = "assetview_session"

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRenderer parses the real embedded templates, so handler tests double
// as template smoke tests.
func newTestRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	templateFS, err := fs.Sub(assetview.TemplateFS, TemplatePathFromRoot)
	require.NoError(t, err)
	renderer, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Logger:     slog.Default(),
	})
	require.NoError(t, err)
	return renderer
}

// newTestHandlers wires Handlers against an in-memory session store and a
// stub backend. A nil handler func means no backend calls are expected.
func newTestHandlers(t *testing.T, backendHandler http.HandlerFunc) (*Handlers, *memory.SessionStore) {
	t.Helper()
	if backendHandler == nil {
		backendHandler = func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}
	srv := httptest.NewServer(backendHandler)
	t.Cleanup(srv.Close)

	store := memory.NewSessionStore()
	client, err := backend.NewClient(backend.Options{BaseURL: srv.URL, Sessions: store})
	require.NoError(t, err)

	return &Handlers{
		Backend:  client,
		Sessions: store,
		Renderer: newTestRenderer(t),
		Session:  config.SessionConfig{CookieName: testCookieName, CookieSecure: false},
		Logger:   slog.Default(),
	}, store
}

func authedSession(role domainauth.Role) domainauth.Session {
	return domainauth.Session{
		Token: "tok-test",
		User: &domainauth.UserClaim{
			UserID:   1,
			Username: "pat",
			FullName: "Pat Example",
			Role:     role,
		},
	}
}

// withSession stores a session and attaches its cookie to the request.
func withSession(t *testing.T, store *memory.SessionStore, r *http.Request, sess domainauth.Session) string {
	t.Helper()
	const id = "sess-test"
	require.NoError(t, store.Save(r.Context(), id, sess))
	r.AddCookie(&http.Cookie{Name: testCookieName, Value: id})
	return id
}
