package output

import (
	"encoding/json"

	"github.com/rgehrsitz/obbbcalc/internal/domain"
)

// JSONFormatter emits the summary as JSON
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(s *domain.EstimateSummary) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(s, "", "  ")
	}
	return json.Marshal(s)
}
