package pricing

// Item is one priced selection in a breakdown. Selections without pricing
// do not appear.
type Item struct {
	ComponentID string  `json:"componentId"`
	OptionID    string  `json:"optionId"`
	OptionName  string  `json:"optionName"`
	PriceDelta  float64 `json:"priceDelta"`
	PricingType string  `json:"pricingType"`
	Currency    string  `json:"currency"`
}

// Breakdown is the itemized result of a price calculation.
//
// Subtotal, TaxAmount and Total are rounded to the catalog's RoundTo decimal
// places; BasePrice and OptionsTotal are reported as unrounded intermediates.
type Breakdown struct {
	BasePrice    float64 `json:"basePrice"`
	OptionsTotal float64 `json:"optionsTotal"`
	Subtotal     float64 `json:"subtotal"`
	TaxAmount    float64 `json:"taxAmount"`
	Total        float64 `json:"total"`
	Currency     string  `json:"currency"`
	Items        []Item  `json:"breakdown"`

	// RuleAdjustments is the subtotal after rule modifications were applied,
	// present only when at least one modification ran. It lets a UI show
	// that rules changed the price.
	RuleAdjustments *float64 `json:"ruleAdjustments,omitempty"`
}
