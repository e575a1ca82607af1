// Package renderer generates deploy-time artifacts from the embedded
// templates under templates/. Today that is the static site's
// config.js, which carries the dashboard API location; data values may
// contain CloudFormation tokens, which pass through untouched and
// resolve at deploy time.
package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.tmpl
var tplFS embed.FS

// Render merges the named template file with data. Rendering happens a
// handful of times per synth, so templates are parsed on demand rather
// than cached.
func Render(name TemplateName, data any) (string, error) {
	path := "templates/" + string(name)
	t, err := template.New(string(name)).
		Funcs(sprig.TxtFuncMap()).
		ParseFS(tplFS, path)
	if err != nil {
		return "", fmt.Errorf("parsing template %q: %w", path, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %q: %w", path, err)
	}
	return buf.String(), nil
}
