package pricing

import (
	"log/slog"
	"math"

	"mosaic-hq/configurator/pkg/catalog"
)

// Calculator computes price breakdowns against a fixed catalog snapshot.
// It holds no mutable state; construct a new Calculator when the catalog
// changes.
type Calculator struct {
	desc    *catalog.Descriptor
	formula *FormulaEvaluator
	logger  *slog.Logger
}

// NewCalculator creates a calculator for the given catalog snapshot.
func NewCalculator(desc *catalog.Descriptor, logger *slog.Logger) (*Calculator, error) {
	if desc == nil {
		return nil, ErrNilDescriptor
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{
		desc:    desc,
		formula: NewFormulaEvaluator(logger),
		logger:  logger,
	}, nil
}

// Calculate produces the price breakdown for the selection state, applying
// the rule-driven modifications in slice order.
//
// Selections referencing components or options absent from the catalog are
// silently ignored: the UI may be one interaction ahead of a just-updated
// catalog, and a stale key must contribute zero rather than fail.
func (c *Calculator) Calculate(selections catalog.SelectionState, mods []Modification) *Breakdown {
	settings := c.desc.Pricing

	breakdown := &Breakdown{
		BasePrice: settings.BasePrice,
		Currency:  settings.Currency,
		Items:     []Item{},
	}

	// Per-component contributions, kept separate so component-targeted
	// modifications can rewrite a single component's share.
	contributions := make(map[string]float64)

	for _, comp := range c.desc.Components {
		for _, optionID := range selections.Selected(comp.ID) {
			opt, ok := comp.Option(optionID)
			if !ok {
				c.logger.Debug("selection references unknown option",
					"component_id", comp.ID,
					"option_id", optionID,
				)
				continue
			}
			if opt.Pricing == nil {
				continue
			}

			delta := c.contribution(opt.Pricing, settings, selections)
			contributions[comp.ID] += delta

			breakdown.Items = append(breakdown.Items, Item{
				ComponentID: comp.ID,
				OptionID:    opt.ID,
				OptionName:  opt.Name,
				PriceDelta:  delta,
				PricingType: string(opt.Pricing.PricingType),
				Currency:    itemCurrency(opt.Pricing, settings),
			})
		}
	}

	// Component-targeted modifications rewrite that component's contribution
	// before the subtotal is formed.
	modified := false
	for _, mod := range mods {
		if mod.ComponentID == "" {
			continue
		}
		contributions[mod.ComponentID] = mod.Apply(contributions[mod.ComponentID])
		modified = true
	}

	for _, comp := range c.desc.Components {
		breakdown.OptionsTotal += contributions[comp.ID]
		delete(contributions, comp.ID)
	}
	// Contributions left over belong to component-targeted modifications on
	// ids outside the catalog; they still count toward the total.
	for _, delta := range contributions {
		breakdown.OptionsTotal += delta
	}

	subtotal := settings.BasePrice + breakdown.OptionsTotal

	// Subtotal-level modifications apply in slice order, first come first
	// applied; price changes are cumulative.
	for _, mod := range mods {
		if mod.ComponentID != "" {
			continue
		}
		subtotal = mod.Apply(subtotal)
		modified = true
	}
	if modified {
		adjusted := subtotal
		breakdown.RuleAdjustments = &adjusted
	}

	taxAmount := subtotal * settings.TaxRate

	// Round only the reported numbers, never the intermediates.
	breakdown.Subtotal = roundHalfUp(subtotal, settings.RoundTo)
	breakdown.TaxAmount = roundHalfUp(taxAmount, settings.RoundTo)
	breakdown.Total = roundHalfUp(subtotal+taxAmount, settings.RoundTo)

	return breakdown
}

// contribution computes a single option pricing's share of the options total.
func (c *Calculator) contribution(p *catalog.OptionPricing, settings catalog.PricingSettings, selections catalog.SelectionState) float64 {
	switch p.PricingType {
	case catalog.PricingFixed:
		return p.PriceModifier

	case catalog.PricingPercentage:
		return settings.BasePrice * p.PriceModifier / 100

	case catalog.PricingReplacement:
		// REPLACEMENT sums like FIXED; true replacement semantics are the
		// caller's responsibility. See the package documentation.
		return p.PriceModifier

	case catalog.PricingFormula:
		return c.formula.Evaluate(p.PriceFormula, FormulaContext{
			BasePrice:     settings.BasePrice,
			PriceModifier: p.PriceModifier,
			Selections:    selections,
		})

	default:
		c.logger.Debug("unknown pricing type treated as zero", "pricing_type", p.PricingType)
		return 0
	}
}

func itemCurrency(p *catalog.OptionPricing, settings catalog.PricingSettings) string {
	if p.Currency != "" {
		return p.Currency
	}
	return settings.Currency
}

// roundHalfUp rounds half away from zero to the given number of decimal
// places. A non-positive places value leaves v untouched except places == 0,
// which rounds to a whole number.
func roundHalfUp(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	factor := math.Pow(10, float64(places))
	if v < 0 {
		return -math.Floor(-v*factor+0.5) / factor
	}
	return math.Floor(v*factor+0.5) / factor
}
