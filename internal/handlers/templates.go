package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "base.html"

// TemplateCache holds parsed templates
type TemplateCache struct {
	cache map[string]*template.Template
	mu    sync.RWMutex
	funcs template.FuncMap
}

func NewTemplateCache() *TemplateCache {
	return &TemplateCache{
		cache: make(map[string]*template.Template),
		funcs: make(template.FuncMap),
	}
}

func (tc *TemplateCache) AddFunc(name string, fn any) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.funcs[name] = fn
}

// Load parses every page in fsys together with the shared layout.
func (tc *TemplateCache) Load(fsys fs.FS) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	files, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return err
	}
	for _, file := range files {
		name := path.Base(file)
		if name == layoutTemplate {
			continue
		}
		tmpl, err := template.New(name).Funcs(tc.funcs).ParseFS(fsys, layoutTemplate, file)
		if err != nil {
			slog.Error("Failed to parse template", "file", file, "error", err)
			return err
		}
		tc.cache[name] = tmpl
		slog.Debug("Cached template", "name", name)
	}
	return nil
}

// LoadEmbedded loads the pages compiled into the binary.
func (tc *TemplateCache) LoadEmbedded() error {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return err
	}
	return tc.Load(sub)
}

func (tc *TemplateCache) Get(name string) *template.Template {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.cache[name]
}

// Render executes the page into a buffer first so a template error never
// leaves a half-written response.
func (tc *TemplateCache) Render(w http.ResponseWriter, status int, name string, data any) error {
	tmpl := tc.Get(name)
	if tmpl == nil {
		return fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
