package report

import (
	"embed"
	"html/template"
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/omensec/solsca/pkg/models"
)

//go:embed template.html
var templateFS embed.FS

// Renderer renders a models.Report as a self-contained HTML document.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer builds a Renderer over the embedded template.
func NewRenderer() (*Renderer, error) {
	funcMap := template.FuncMap{
		"severityClass": func(s models.Severity) string {
			switch s {
			case models.SeverityHigh:
				return "high"
			case models.SeverityMedium:
				return "medium"
			case models.SeverityLow:
				return "low"
			default:
				return "info"
			}
		},
		"title": cases.Title(language.English).String,
		"num": func(n int) string {
			return message.NewPrinter(language.English).Sprintf("%d", n)
		},
		"swcLink": func(swcID string) string {
			if swcID == "" || len(swcID) < 5 {
				return ""
			}
			return "https://swcregistry.io/docs/" + swcID
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}

	tmplContent, err := templateFS.ReadFile("template.html")
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New("report").Funcs(funcMap).Parse(string(tmplContent))
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the HTML document for r to w.
func (rd *Renderer) Render(r models.Report, w io.Writer) error {
	return rd.tmpl.Execute(w, r)
}

// WriteHTML renders r to w using a freshly built Renderer (§6.4).
func WriteHTML(r models.Report, w io.Writer) error {
	rd, err := NewRenderer()
	if err != nil {
		return err
	}
	return rd.Render(r, w)
}
