package gen

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/go-openapi/inflect"
	"golang.org/x/tools/imports"
)

// Funcs are the helpers available to text templates.
var Funcs = template.FuncMap{
	"lower":      strings.ToLower,
	"upper":      strings.ToUpper,
	"join":       strings.Join,
	"quote":      strconv.Quote,
	"lowerFirst": lowerFirst,
	"snake":      inflect.Underscore,
	"plural":     inflect.Pluralize,
	"camel":      inflect.CamelizeDownFirst,
}

// TextTemplate renders a text/template and formats the result as Go source
// with goimports. Attributes are exposed to the template as a map, e.g.
// {{ .type.Name }} or {{ .package }}.
type TextTemplate struct {
	Attrs
	tmpl *template.Template
}

// NewTextTemplate parses text as a template named name.
func NewTextTemplate(name, text string) (*TextTemplate, error) {
	tmpl, err := template.New(name).Funcs(Funcs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	return &TextTemplate{Attrs: make(Attrs), tmpl: tmpl}, nil
}

// ParseTextTemplate parses the template file at path.
func ParseTextTemplate(path string) (*TextTemplate, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return NewTextTemplate(filepath.Base(path), string(text))
}

// MustParseTextTemplate is like NewTextTemplate but panics on error.
func MustParseTextTemplate(name, text string) *TextTemplate {
	t, err := NewTextTemplate(name, text)
	if err != nil {
		panic(err)
	}
	return t
}

// Write executes the template and writes the formatted source to w. If the
// output is not valid Go and w reports a Path, the unformatted output is
// written next to it with an ".error" suffix.
func (t *TextTemplate) Write(w io.Writer) error {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, map[string]any(t.Attrs)); err != nil {
		return fmt.Errorf("execute template %s: %w", t.tmpl.Name(), err)
	}
	name := t.tmpl.Name()
	p, hasPath := w.(interface{ Path() string })
	if hasPath {
		name = p.Path()
	}
	formatted, err := imports.Process(name, buf.Bytes(), nil)
	if err != nil {
		if hasPath {
			debugPath := p.Path() + ".error"
			_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
			return fmt.Errorf("format %s: %w (unformatted written to %s)", name, err, debugPath)
		}
		return fmt.Errorf("format %s: %w", name, err)
	}
	_, err = w.Write(formatted)
	return err
}
