package pricing

import (
	"log/slog"

	"github.com/diegoholiveira/jsonlogic/v3"

	"mosaic-hq/configurator/pkg/catalog"
)

// FormulaContext is the data a pricing formula evaluates against.
type FormulaContext struct {
	BasePrice     float64
	PriceModifier float64
	Selections    catalog.SelectionState
}

// FormulaEvaluator evaluates FORMULA-typed option pricing as JsonLogic.
//
// The formula sees a flat data document:
//
//	{"basePrice": 100, "priceModifier": 5, "selectionCount": 3}
//
// A formula that is missing, fails to evaluate, or yields a non-numeric
// result contributes zero; formulas are merchant data and must not be able
// to break a price calculation.
type FormulaEvaluator struct {
	logger *slog.Logger
}

// NewFormulaEvaluator creates a formula evaluator.
func NewFormulaEvaluator(logger *slog.Logger) *FormulaEvaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FormulaEvaluator{logger: logger}
}

// Evaluate runs the formula and returns its numeric result, or zero.
func (f *FormulaEvaluator) Evaluate(formula map[string]any, fctx FormulaContext) float64 {
	if len(formula) == 0 {
		return 0
	}

	selectionCount := 0
	for componentID := range fctx.Selections {
		selectionCount += fctx.Selections.Count(componentID)
	}

	data := map[string]any{
		"basePrice":      fctx.BasePrice,
		"priceModifier":  fctx.PriceModifier,
		"selectionCount": float64(selectionCount),
	}

	out, err := jsonlogic.ApplyInterface(formula, data)
	if err != nil {
		f.logger.Debug("pricing formula failed, contributing zero", "error", err)
		return 0
	}

	switch v := out.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		f.logger.Debug("pricing formula returned non-numeric result", "result", out)
		return 0
	}
}
