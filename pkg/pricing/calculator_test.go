package pricing

import (
	"errors"
	"reflect"
	"testing"

	"mosaic-hq/configurator/pkg/catalog"
)

func pricedOption(id, name string, typ catalog.PricingType, modifier float64) *catalog.Option {
	return &catalog.Option{
		ID:   id,
		Name: name,
		Pricing: &catalog.OptionPricing{
			PricingType:   typ,
			PriceModifier: modifier,
		},
	}
}

func pricingDescriptor() *catalog.Descriptor {
	return &catalog.Descriptor{
		ID: "lamp",
		Components: []*catalog.Component{
			{
				ID: "shade", Name: "Shade", SelectionMode: catalog.SelectionSingle,
				Options: []*catalog.Option{
					pricedOption("linen", "Linen", catalog.PricingFixed, 25),
					pricedOption("silk", "Silk", catalog.PricingPercentage, 10),
					pricedOption("custom", "Custom", catalog.PricingReplacement, 140),
					{ID: "paper", Name: "Paper"},
				},
			},
			{
				ID: "extras", Name: "Extras", SelectionMode: catalog.SelectionMultiple,
				Options: []*catalog.Option{
					pricedOption("dimmer", "Dimmer", catalog.PricingFixed, 5),
					pricedOption("smart", "Smart bulb", catalog.PricingFixed, 10),
				},
			},
		},
		Pricing: catalog.PricingSettings{
			BasePrice: 100,
			Currency:  "EUR",
			TaxRate:   0.2,
			RoundTo:   2,
		},
	}
}

func newCalculator(t *testing.T, desc *catalog.Descriptor) *Calculator {
	t.Helper()
	c, err := NewCalculator(desc, nil)
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	return c
}

func TestNewCalculatorNilDescriptor(t *testing.T) {
	if _, err := NewCalculator(nil, nil); !errors.Is(err, ErrNilDescriptor) {
		t.Fatalf("err = %v, want ErrNilDescriptor", err)
	}
}

func TestCalculateEmptySelection(t *testing.T) {
	c := newCalculator(t, pricingDescriptor())
	b := c.Calculate(catalog.SelectionState{}, nil)

	if b.BasePrice != 100 || b.OptionsTotal != 0 {
		t.Errorf("BasePrice = %v, OptionsTotal = %v; want 100, 0", b.BasePrice, b.OptionsTotal)
	}
	if b.Subtotal != 100 || b.TaxAmount != 20 || b.Total != 120 {
		t.Errorf("Subtotal/Tax/Total = %v/%v/%v; want 100/20/120", b.Subtotal, b.TaxAmount, b.Total)
	}
	if b.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", b.Currency)
	}
	if len(b.Items) != 0 {
		t.Errorf("Items = %+v, want empty", b.Items)
	}
	if b.RuleAdjustments != nil {
		t.Error("RuleAdjustments must be absent without modifications")
	}
}

func TestCalculatePricingTypes(t *testing.T) {
	tests := []struct {
		name         string
		selection    catalog.SelectionState
		optionsTotal float64
		total        float64
	}{
		{
			name:         "fixed adds the modifier",
			selection:    catalog.SelectionState{"shade": catalog.Single("linen")},
			optionsTotal: 25,
			total:        150,
		},
		{
			name:         "percentage of base price",
			selection:    catalog.SelectionState{"shade": catalog.Single("silk")},
			optionsTotal: 10,
			total:        132,
		},
		{
			name:         "replacement sums like fixed",
			selection:    catalog.SelectionState{"shade": catalog.Single("custom")},
			optionsTotal: 140,
			total:        288,
		},
		{
			name:         "option without pricing contributes zero",
			selection:    catalog.SelectionState{"shade": catalog.Single("paper")},
			optionsTotal: 0,
			total:        120,
		},
	}

	c := newCalculator(t, pricingDescriptor())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := c.Calculate(tt.selection, nil)
			if b.OptionsTotal != tt.optionsTotal {
				t.Errorf("OptionsTotal = %v, want %v", b.OptionsTotal, tt.optionsTotal)
			}
			if b.Total != tt.total {
				t.Errorf("Total = %v, want %v", b.Total, tt.total)
			}
		})
	}
}

func TestCalculateMultiSelect(t *testing.T) {
	c := newCalculator(t, pricingDescriptor())
	b := c.Calculate(catalog.SelectionState{"extras": {"dimmer", "smart"}}, nil)

	if b.OptionsTotal != 15 {
		t.Errorf("OptionsTotal = %v, want 15", b.OptionsTotal)
	}
	if len(b.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(b.Items))
	}
	if b.Items[0].OptionID != "dimmer" || b.Items[0].PriceDelta != 5 {
		t.Errorf("Items[0] = %+v", b.Items[0])
	}
	if b.Items[1].OptionID != "smart" || b.Items[1].PriceDelta != 10 {
		t.Errorf("Items[1] = %+v", b.Items[1])
	}
}

func TestCalculateRoundingOnlyAtReportTime(t *testing.T) {
	desc := pricingDescriptor()
	desc.Pricing.TaxRate = 0.199
	c := newCalculator(t, desc)

	b := c.Calculate(catalog.SelectionState{}, nil)

	// 100 * 0.199 rounds to itself; no cumulative drift from intermediate
	// rounding.
	if b.TaxAmount != 19.9 {
		t.Errorf("TaxAmount = %v, want 19.9", b.TaxAmount)
	}
	if b.Total != 119.9 {
		t.Errorf("Total = %v, want 119.9", b.Total)
	}
}

func TestCalculateHalfUpRounding(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{2.375, 2, 2.38},
		{2.372, 2, 2.37},
		{-2.375, 2, -2.38},
		{2.5, 0, 3},
		{100.5, 0, 101},
	}
	for _, tt := range tests {
		if got := roundHalfUp(tt.v, tt.places); got != tt.want {
			t.Errorf("roundHalfUp(%v, %d) = %v, want %v", tt.v, tt.places, got, tt.want)
		}
	}
}

func TestCalculateSubtotalModifications(t *testing.T) {
	tests := []struct {
		name  string
		mod   Modification
		total float64
	}{
		{
			name:  "set price replaces the subtotal",
			mod:   Modification{Kind: ModSetPrice, Value: 200},
			total: 240,
		},
		{
			name:  "add price",
			mod:   Modification{Kind: ModAddPrice, Value: 15},
			total: 138,
		},
		{
			name:  "multiply price",
			mod:   Modification{Kind: ModMultiplyPrice, Value: 1.5},
			total: 180,
		},
	}

	c := newCalculator(t, pricingDescriptor())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := c.Calculate(catalog.SelectionState{}, []Modification{tt.mod})
			if b.Total != tt.total {
				t.Errorf("Total = %v, want %v", b.Total, tt.total)
			}
			if b.RuleAdjustments == nil {
				t.Error("RuleAdjustments must be set when a modification ran")
			}
		})
	}
}

func TestCalculateModificationOrderMatters(t *testing.T) {
	c := newCalculator(t, pricingDescriptor())

	addThenMultiply := c.Calculate(catalog.SelectionState{}, []Modification{
		{Kind: ModAddPrice, Value: 50},
		{Kind: ModMultiplyPrice, Value: 2},
	})
	multiplyThenAdd := c.Calculate(catalog.SelectionState{}, []Modification{
		{Kind: ModMultiplyPrice, Value: 2},
		{Kind: ModAddPrice, Value: 50},
	})

	if addThenMultiply.Subtotal != 300 {
		t.Errorf("add-then-multiply Subtotal = %v, want 300", addThenMultiply.Subtotal)
	}
	if multiplyThenAdd.Subtotal != 250 {
		t.Errorf("multiply-then-add Subtotal = %v, want 250", multiplyThenAdd.Subtotal)
	}
}

func TestCalculateComponentTargetedModification(t *testing.T) {
	c := newCalculator(t, pricingDescriptor())

	// The shade contributes 25; a SET_PRICE on the component rewrites that
	// share before the subtotal forms.
	b := c.Calculate(catalog.SelectionState{"shade": catalog.Single("linen")}, []Modification{
		{ComponentID: "shade", Kind: ModSetPrice, Value: 40},
	})

	if b.OptionsTotal != 40 {
		t.Errorf("OptionsTotal = %v, want 40", b.OptionsTotal)
	}
	if b.Subtotal != 140 {
		t.Errorf("Subtotal = %v, want 140", b.Subtotal)
	}
}

func TestCalculateDuplicateModificationsAccumulate(t *testing.T) {
	c := newCalculator(t, pricingDescriptor())
	b := c.Calculate(catalog.SelectionState{}, []Modification{
		{Kind: ModAddPrice, Value: 10, RuleID: "r1"},
		{Kind: ModAddPrice, Value: 10, RuleID: "r2"},
	})
	if b.Subtotal != 120 {
		t.Errorf("Subtotal = %v, want 120", b.Subtotal)
	}
}

func TestCalculateUnknownSelectionIgnored(t *testing.T) {
	c := newCalculator(t, pricingDescriptor())

	with := c.Calculate(catalog.SelectionState{
		"shade": catalog.Single("linen"),
		"ghost": {"nothing"},
		"extras": {
			"dimmer",
			"retired",
		},
	}, nil)

	if with.OptionsTotal != 30 {
		t.Errorf("OptionsTotal = %v, want 30", with.OptionsTotal)
	}
	if len(with.Items) != 2 {
		t.Errorf("Items = %+v, want 2 entries", with.Items)
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	c := newCalculator(t, pricingDescriptor())
	sel := catalog.SelectionState{
		"shade":  catalog.Single("silk"),
		"extras": {"dimmer"},
	}
	mods := []Modification{{Kind: ModAddPrice, Value: 5}}

	first := c.Calculate(sel, mods)
	second := c.Calculate(sel, mods)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calculation differs:\n%+v\n%+v", first, second)
	}
}
