package report

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"text/template"

	"github.com/lepinkainen/video-digest/templates"
)

// SummaryTemplate is the file name of the document template
const SummaryTemplate = "summary.md.tmpl"

var (
	// templateOverrideFS points at the local templates directory, checked first.
	templateOverrideFS fs.FS = os.DirFS("templates")
	// templateFallbackFS is the embedded filesystem baked into the binary.
	templateFallbackFS fs.FS = templates.EmbeddedTemplates
)

// SetTemplateOverrideFS switches the primary filesystem used when loading templates.
func SetTemplateOverrideFS(f fs.FS) {
	templateOverrideFS = f
}

// SetTemplateFallbackFS overrides the embedded filesystem used when no override file is available.
func SetTemplateFallbackFS(f fs.FS) {
	templateFallbackFS = f
}

// TemplateFuncs returns the helpers available to document templates
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"join": strings.Join,
	}
}

// LoadTemplate parses name from the override filesystem, falling back to the embedded copy
func LoadTemplate(name string) (*template.Template, error) {
	content, source, err := readTemplate(name)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(name).Funcs(TemplateFuncs()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	slog.Debug("Template loaded", "name", name, "source", source)
	return tmpl, nil
}

func readTemplate(name string) ([]byte, string, error) {
	if templateOverrideFS != nil {
		content, err := fs.ReadFile(templateOverrideFS, name)
		if err == nil {
			return content, "override", nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("failed to read template %s: %w", name, err)
		}
	}

	if templateFallbackFS == nil {
		return nil, "", fmt.Errorf("template %s not found", name)
	}

	content, err := fs.ReadFile(templateFallbackFS, name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read embedded template %s: %w", name, err)
	}
	return content, "embedded", nil
}
