// Package view renders the hunch HTML pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/plugfox/hunchworks-server/internal/controller"
	"github.com/plugfox/hunchworks-server/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	layoutFile = "templates/layout.html"
	formFile   = "templates/_form.html"
)

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page template with the layout and the shared partials.
func New(routes controller.Routes) (*Renderer, error) {
	funcs := template.FuncMap{
		"hunchesPath":     routes.HunchesURL,
		"hunchPath":       routes.HunchURL,
		"newHunchPath":    routes.NewHunchURL,
		"editHunchPath":   routes.EditHunchURL,
		"statusChoices":   model.HunchStatusChoices,
		"privacyChoices":  model.PrivacyLevelChoices,
		"formatTimestamp": formatTimestamp,
	}

	files, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile || strings.HasPrefix(path.Base(file), "_") {
			continue
		}

		name := strings.TrimSuffix(path.Base(file), ".html")

		page, err := template.New(path.Base(layoutFile)).Funcs(funcs).ParseFS(templatesFS, layoutFile, formFile, file)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}

		pages[name] = page
	}

	return &Renderer{pages: pages}, nil
}

// Render executes the named page with the assigned variables.
// Nothing is written when execution fails.
func (r *Renderer) Render(w io.Writer, name string, assigns map[string]any) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, assigns); err != nil {
		return fmt.Errorf("rendering template %s: %w", name, err)
	}

	_, err := buf.WriteTo(w)

	return err
}
