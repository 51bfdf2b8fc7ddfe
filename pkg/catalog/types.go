package catalog

// ComponentType categorizes what a component customizes on the product.
type ComponentType string

const (
	ComponentTypeMesh      ComponentType = "MESH"
	ComponentTypeMaterial  ComponentType = "MATERIAL"
	ComponentTypeTexture   ComponentType = "TEXTURE"
	ComponentTypeColor     ComponentType = "COLOR"
	ComponentTypeDecal     ComponentType = "DECAL"
	ComponentTypeAccessory ComponentType = "ACCESSORY"
	ComponentTypeSize      ComponentType = "SIZE"
	ComponentTypeEngraving ComponentType = "ENGRAVING"
)

// SelectionMode determines how many options a shopper may pick in a component.
type SelectionMode string

const (
	// SelectionSingle allows exactly one option at a time.
	SelectionSingle SelectionMode = "SINGLE"

	// SelectionMultiple allows an ordered list of options, bounded by the
	// component's MinSelections/MaxSelections.
	SelectionMultiple SelectionMode = "MULTIPLE"
)

// PricingType determines how an option's PriceModifier contributes to the
// options total.
type PricingType string

const (
	// PricingFixed contributes PriceModifier as an absolute amount.
	PricingFixed PricingType = "FIXED"

	// PricingPercentage contributes basePrice * PriceModifier / 100.
	PricingPercentage PricingType = "PERCENTAGE"

	// PricingReplacement contributes PriceModifier as-is. Despite the name,
	// the calculator sums it into the options total exactly like FIXED; a
	// caller wanting true replacement semantics must exclude the base
	// contribution upstream.
	PricingReplacement PricingType = "REPLACEMENT"

	// PricingFormula evaluates a JsonLogic formula against the pricing
	// context and contributes the numeric result.
	PricingFormula PricingType = "FORMULA"
)

// OptionPricing describes how a selected option affects the price.
// A nil OptionPricing on an Option means zero contribution.
type OptionPricing struct {
	// PriceDelta is the externally-reported contribution shown to shoppers.
	PriceDelta float64

	// PricingType selects the calculation mode for PriceModifier.
	PricingType PricingType

	// PriceModifier is the raw magnitude used by the calculator.
	PriceModifier float64

	// PriceFormula is a JsonLogic expression, used when PricingType is
	// PricingFormula.
	PriceFormula map[string]any

	// Currency is an ISO 4217 code; empty inherits the catalog currency.
	Currency string
}

// Option is one concrete choice within a component.
// It references its component by id only; the component owns the slice.
type Option struct {
	ID          string
	ComponentID string
	Name        string
	SKU         string
	Type        string
	SortOrder   int
	IsDefault   bool
	IsEnabled   bool
	IsVisible   bool

	// InStock is nil when stock tracking is disabled for this option.
	InStock *bool

	// StockQuantity is nil when quantity is not tracked. A tracked quantity
	// of zero or less means the option cannot be ordered.
	StockQuantity *int

	// Pricing is nil for free options.
	Pricing *OptionPricing
}

// Orderable reports whether the option can currently be purchased.
// Untracked stock is treated as available.
func (o *Option) Orderable() bool {
	if o.InStock != nil && !*o.InStock {
		return false
	}
	if o.StockQuantity != nil && *o.StockQuantity <= 0 {
		return false
	}
	return true
}

// Component is a configurable slot on the product (e.g. "Color") containing
// one or more options.
type Component struct {
	ID            string
	Name          string
	Description   string
	Type          ComponentType
	SelectionMode SelectionMode
	IsRequired    bool

	// MinSelections is the minimum selection count for a valid configuration.
	MinSelections int

	// MaxSelections bounds the selection count; 0 means unbounded.
	MaxSelections int

	SortOrder int
	IsVisible bool
	IsEnabled bool
	Options   []*Option
}

// Option returns the option with the given id, if present.
func (c *Component) Option(optionID string) (*Option, bool) {
	for _, opt := range c.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return nil, false
}

// DefaultOption returns the option flagged as default, if any.
func (c *Component) DefaultOption() (*Option, bool) {
	for _, opt := range c.Options {
		if opt.IsDefault {
			return opt, true
		}
	}
	return nil, false
}

// PricingSettings holds the catalog-level pricing parameters.
type PricingSettings struct {
	// BasePrice is the product price before any option contributions.
	BasePrice float64

	// Currency is the ISO 4217 code all amounts are expressed in.
	Currency string

	// TaxRate is a fraction (0.2 means 20%).
	TaxRate float64

	// RoundTo is the number of decimal places for the reported subtotal,
	// tax amount and total. Intermediate values are not rounded.
	RoundTo int
}

// Descriptor is an immutable snapshot of one product's catalog: its
// components, rules and pricing settings.
type Descriptor struct {
	ID         string
	Name       string
	Components []*Component
	Rules      []*Rule
	Pricing    PricingSettings
}

// Component returns the component with the given id, if present.
func (d *Descriptor) Component(componentID string) (*Component, bool) {
	for _, comp := range d.Components {
		if comp.ID == componentID {
			return comp, true
		}
	}
	return nil, false
}

// FindOption resolves an option id anywhere in the catalog.
func (d *Descriptor) FindOption(optionID string) (*Component, *Option, bool) {
	for _, comp := range d.Components {
		if opt, ok := comp.Option(optionID); ok {
			return comp, opt, true
		}
	}
	return nil, nil, false
}
