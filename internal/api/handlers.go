package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rgehrsitz/obbbcalc/internal/calculation"
	"github.com/rgehrsitz/obbbcalc/internal/compare"
	"github.com/rgehrsitz/obbbcalc/internal/config"
	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/rgehrsitz/obbbcalc/internal/eligibility"
	"github.com/rgehrsitz/obbbcalc/internal/output"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

var contentTypes = map[string]string{
	"pdf":     "application/pdf",
	"html":    "text/html; charset=utf-8",
	"csv":     "text/csv; charset=utf-8",
	"json":    "application/json",
	"console": "text/plain; charset=utf-8",
}

// Handler serves the estimate API. It holds only shared read-only state;
// every request is computed independently.
type Handler struct {
	Rules  *domain.Rules
	Calc   *calculation.DeductionCalculator
	Parser *config.InputParser
	Logger calculation.Logger

	validator *validator.Validate
	now       func() time.Time
}

// NewHandler creates a handler for a rule set
func NewHandler(rules *domain.Rules, logger calculation.Logger) *Handler {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	calc := calculation.NewDeductionCalculator(rules)
	calc.SetLogger(logger)
	return &Handler{
		Rules:     rules,
		Calc:      calc,
		Parser:    config.NewInputParser(),
		Logger:    logger,
		validator: validator.New(),
		now:       time.Now,
	}
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetRules returns the active rule table
func (h *Handler) GetRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Rules)
}

// GetQuestions returns the screening questions
func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	questions := h.Calc.Questions
	if len(questions) == 0 {
		questions = eligibility.DefaultQuestions
	}
	writeJSON(w, http.StatusOK, questions)
}

// Estimate computes a deduction estimate
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.calculate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Summary computes an estimate and returns it as a document. The format
// query parameter selects pdf (default), html, csv or json.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "pdf"
	}
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		writeError(w, http.StatusBadRequest, "Unsupported format", fmt.Errorf("%q is not one of %v", format, output.AvailableFormatterNames()))
		return
	}

	summary, ok := h.calculate(w, r)
	if !ok {
		return
	}

	data, err := formatter.Format(summary)
	if err != nil {
		h.Logger.Errorf("failed to render %s summary: %v", formatter.Name(), err)
		writeError(w, http.StatusInternalServerError, "Failed to render summary", err)
		return
	}

	ext := output.Extension(formatter)
	w.Header().Set("Content-Type", contentTypes[formatter.Name()])
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="deduction_summary.%s"`, ext))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Compare runs the estimate under every configured filing status
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}
	engine := compare.NewCompareEngine(h.Calc)
	compSet, err := engine.Compare(r.Context(), input, compare.CompareOptions{Statuses: h.Rules.Statuses()})
	if err != nil {
		h.writeCalcError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, compSet)
}

func (h *Handler) decodeInput(w http.ResponseWriter, r *http.Request) (*domain.EstimateInput, bool) {
	var req EstimateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return nil, false
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err), nil)
		return nil, false
	}

	input, err := req.ToInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return nil, false
	}
	if err := h.Parser.ValidateInput(input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid estimate input", err)
		return nil, false
	}
	return input, true
}

func (h *Handler) calculate(w http.ResponseWriter, r *http.Request) (*domain.EstimateSummary, bool) {
	input, ok := h.decodeInput(w, r)
	if !ok {
		return nil, false
	}
	summary, err := h.Calc.Calculate(input)
	if err != nil {
		h.writeCalcError(w, err)
		return nil, false
	}
	output.Stamp(summary, h.now())
	return summary, true
}

func (h *Handler) writeCalcError(w http.ResponseWriter, err error) {
	var conflict *domain.ConflictingEstimatesError
	var inel *domain.IneligibleError
	switch {
	case errors.As(err, &conflict):
		writeError(w, http.StatusUnprocessableEntity, "Conflicting overtime estimates", err)
	case errors.As(err, &inel):
		writeError(w, http.StatusUnprocessableEntity, "Not eligible", err)
	default:
		writeError(w, http.StatusBadRequest, "Invalid estimate input", err)
	}
}

// extractValidationErrors reports the first failing field
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
