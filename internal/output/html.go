package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/rgehrsitz/obbbcalc/internal/domain"
)

// HTMLFormatter renders the summary with the embedded HTML template
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/summary.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("summary").Funcs(template.FuncMap{
	"dollars": FormatDollars,
	"curr":    FormatCurrency,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(s *domain.EstimateSummary) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("summary is required")
	}
	var buf bytes.Buffer
	data := struct {
		*domain.EstimateSummary
		Assumptions []string
		Disclaimer  string
	}{s, DefaultAssumptions, Disclaimer}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
