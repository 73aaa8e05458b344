package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"sync"
)

// TemplateRenderer renders HTML pages. Each page template is parsed together
// with the layout and partials into its own template set, so pages can all
// define a "content" block without colliding.
type TemplateRenderer struct {
	templateFS fs.FS
	devMode    bool
	logger     *slog.Logger

	mu    sync.RWMutex
	pages map[string]*template.Template
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	// TemplateFS contains layout.tmpl and pages/*.tmpl (required).
	TemplateFS fs.FS
	// DevMode reparses templates on every render so edits show up without a
	// restart.
	DevMode bool
	Logger  *slog.Logger
}

// NewTemplateRenderer parses all page templates from the provided config. In
// dev mode the FS should be an os.DirFS over the template directory; in
// production it is the embedded FS.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &TemplateRenderer{
		templateFS: cfg.TemplateFS,
		devMode:    cfg.DevMode,
		logger:     logger,
	}
	pages, err := r.parseAll()
	if err != nil {
		return nil, err
	}
	r.pages = pages
	return r, nil
}

func (r *TemplateRenderer) parseAll() (map[string]*template.Template, error) {
	pagePaths, err := fs.Glob(r.templateFS, "pages/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("glob page templates: %w", err)
	}
	if len(pagePaths) == 0 {
		return nil, errors.New("no page templates found under pages/")
	}

	pages := make(map[string]*template.Template, len(pagePaths))
	for _, p := range pagePaths {
		name := strings.TrimSuffix(path.Base(p), ".tmpl")
		t, err := template.New("layout.tmpl").ParseFS(r.templateFS, "layout.tmpl", p)
		if err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", p, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// Render writes the named page wrapped in the layout. The page is rendered to
// a buffer first so a template error can still produce a clean 500 instead of
// a half-written body.
func (r *TemplateRenderer) Render(w http.ResponseWriter, page string, data *PageData) error {
	t, err := r.lookup(page)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return err
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.logger.Error("template execution failed",
			slog.String("page", page),
			slog.Any("error", err),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	return err
}

func (r *TemplateRenderer) lookup(page string) (*template.Template, error) {
	if r.devMode {
		// Dev mode: reparse so template edits apply without a restart.
		pages, err := r.parseAll()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.pages = pages
		r.mu.Unlock()
	}

	r.mu.RLock()
	t, ok := r.pages[page]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown page template %q", page)
	}
	return t, nil
}
