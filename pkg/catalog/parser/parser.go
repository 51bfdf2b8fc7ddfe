// Package parser reads catalog descriptors from their YAML document form.
//
// The document mirrors the merchant-facing authoring format: booleans like
// enabled and visible default to true when omitted, and rounding defaults
// to two decimal places. Parsing is strict about identity (ids must be
// present and unique) and permissive about behavior: unknown operators,
// action types and pricing types are carried through untouched and handled
// fail-open at evaluation time.
package parser

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"mosaic-hq/configurator/pkg/catalog"
)

// ErrEmptyDocument is returned when the input holds no catalog.
var ErrEmptyDocument = errors.New("parser: empty catalog document")

// Error reports where in the document parsing failed.
type Error struct {
	Path   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parser: %s: %s", e.Path, e.Reason)
}

type catalogDoc struct {
	ID         string         `yaml:"id"`
	Name       string         `yaml:"name"`
	Pricing    pricingDoc     `yaml:"pricing"`
	Components []componentDoc `yaml:"components"`
	Rules      []ruleDoc      `yaml:"rules"`
}

type pricingDoc struct {
	BasePrice float64 `yaml:"basePrice"`
	Currency  string  `yaml:"currency"`
	TaxRate   float64 `yaml:"taxRate"`
	RoundTo   *int    `yaml:"roundTo"`
}

type componentDoc struct {
	ID            string      `yaml:"id"`
	Name          string      `yaml:"name"`
	Description   string      `yaml:"description"`
	Type          string      `yaml:"type"`
	SelectionMode string      `yaml:"selectionMode"`
	Required      bool        `yaml:"required"`
	MinSelections int         `yaml:"minSelections"`
	MaxSelections int         `yaml:"maxSelections"`
	SortOrder     int         `yaml:"sortOrder"`
	Visible       *bool       `yaml:"visible"`
	Enabled       *bool       `yaml:"enabled"`
	Options       []optionDoc `yaml:"options"`
}

type optionDoc struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	SKU           string            `yaml:"sku"`
	Type          string            `yaml:"type"`
	SortOrder     int               `yaml:"sortOrder"`
	Default       bool              `yaml:"default"`
	Visible       *bool             `yaml:"visible"`
	Enabled       *bool             `yaml:"enabled"`
	InStock       *bool             `yaml:"inStock"`
	StockQuantity *int              `yaml:"stockQuantity"`
	Pricing       *optionPricingDoc `yaml:"pricing"`
}

type optionPricingDoc struct {
	PriceDelta    float64        `yaml:"priceDelta"`
	PricingType   string         `yaml:"pricingType"`
	PriceModifier float64        `yaml:"priceModifier"`
	PriceFormula  map[string]any `yaml:"priceFormula"`
	Currency      string         `yaml:"currency"`
}

type ruleDoc struct {
	ID             string        `yaml:"id"`
	Name           string        `yaml:"name"`
	Description    string        `yaml:"description"`
	Type           string        `yaml:"type"`
	Priority       int           `yaml:"priority"`
	Enabled        *bool         `yaml:"enabled"`
	StopProcessing bool          `yaml:"stopProcessing"`
	Condition      *conditionDoc `yaml:"condition"`
	Actions        []actionDoc   `yaml:"actions"`
}

type conditionDoc struct {
	Kind        string         `yaml:"kind"`
	ComponentID string         `yaml:"componentId"`
	OptionID    string         `yaml:"optionId"`
	Operator    string         `yaml:"operator"`
	Value       any            `yaml:"value"`
	Values      []string       `yaml:"values"`
	Expression  map[string]any `yaml:"expression"`
	Conditions  []conditionDoc `yaml:"conditions"`
}

type actionDoc struct {
	Type        string  `yaml:"type"`
	ComponentID string  `yaml:"componentId"`
	OptionID    string  `yaml:"optionId"`
	Value       float64 `yaml:"value"`
	Message     string  `yaml:"message"`
}

// Parse decodes one catalog descriptor from YAML.
func Parse(data []byte) (*catalog.Descriptor, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parser: decode catalog: %w", err)
	}
	return build(&doc)
}

// ParseReader decodes one catalog descriptor from a stream.
func ParseReader(r io.Reader) (*catalog.Descriptor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parser: read catalog: %w", err)
	}
	return Parse(data)
}

func build(doc *catalogDoc) (*catalog.Descriptor, error) {
	if doc.ID == "" {
		return nil, &Error{Path: "catalog", Reason: "missing id"}
	}
	if len(doc.Components) == 0 {
		return nil, &Error{Path: doc.ID, Reason: "catalog has no components"}
	}

	desc := &catalog.Descriptor{
		ID:   doc.ID,
		Name: doc.Name,
		Pricing: catalog.PricingSettings{
			BasePrice: doc.Pricing.BasePrice,
			Currency:  doc.Pricing.Currency,
			TaxRate:   doc.Pricing.TaxRate,
			RoundTo:   orDefaultInt(doc.Pricing.RoundTo, 2),
		},
	}

	seenComponents := make(map[string]bool, len(doc.Components))
	seenOptions := make(map[string]bool)
	for i := range doc.Components {
		comp, err := buildComponent(&doc.Components[i], seenOptions)
		if err != nil {
			return nil, err
		}
		if seenComponents[comp.ID] {
			return nil, &Error{Path: comp.ID, Reason: "duplicate component id"}
		}
		seenComponents[comp.ID] = true
		desc.Components = append(desc.Components, comp)
	}

	seenRules := make(map[string]bool, len(doc.Rules))
	for i := range doc.Rules {
		rule, err := buildRule(&doc.Rules[i])
		if err != nil {
			return nil, err
		}
		if seenRules[rule.ID] {
			return nil, &Error{Path: rule.ID, Reason: "duplicate rule id"}
		}
		seenRules[rule.ID] = true
		desc.Rules = append(desc.Rules, rule)
	}

	return desc, nil
}

func buildComponent(doc *componentDoc, seenOptions map[string]bool) (*catalog.Component, error) {
	if doc.ID == "" {
		return nil, &Error{Path: "components", Reason: "component missing id"}
	}
	if len(doc.Options) == 0 {
		return nil, &Error{Path: doc.ID, Reason: "component has no options"}
	}
	if doc.MinSelections < 0 || doc.MaxSelections < 0 {
		return nil, &Error{Path: doc.ID, Reason: "selection bounds must not be negative"}
	}
	if doc.MaxSelections > 0 && doc.MinSelections > doc.MaxSelections {
		return nil, &Error{Path: doc.ID, Reason: fmt.Sprintf("minSelections %d exceeds maxSelections %d", doc.MinSelections, doc.MaxSelections)}
	}

	mode := catalog.SelectionMode(doc.SelectionMode)
	if mode == "" {
		mode = catalog.SelectionSingle
	}

	comp := &catalog.Component{
		ID:            doc.ID,
		Name:          doc.Name,
		Description:   doc.Description,
		Type:          catalog.ComponentType(doc.Type),
		SelectionMode: mode,
		IsRequired:    doc.Required,
		MinSelections: doc.MinSelections,
		MaxSelections: doc.MaxSelections,
		SortOrder:     doc.SortOrder,
		IsVisible:     orDefaultBool(doc.Visible, true),
		IsEnabled:     orDefaultBool(doc.Enabled, true),
	}

	defaults := 0
	for i := range doc.Options {
		opt, err := buildOption(&doc.Options[i], comp.ID)
		if err != nil {
			return nil, err
		}
		if seenOptions[opt.ID] {
			return nil, &Error{Path: opt.ID, Reason: "duplicate option id"}
		}
		seenOptions[opt.ID] = true
		if opt.IsDefault {
			defaults++
		}
		comp.Options = append(comp.Options, opt)
	}
	if defaults > 1 {
		return nil, &Error{Path: comp.ID, Reason: "multiple default options"}
	}

	return comp, nil
}

func buildOption(doc *optionDoc, componentID string) (*catalog.Option, error) {
	if doc.ID == "" {
		return nil, &Error{Path: componentID, Reason: "option missing id"}
	}

	opt := &catalog.Option{
		ID:            doc.ID,
		ComponentID:   componentID,
		Name:          doc.Name,
		SKU:           doc.SKU,
		Type:          doc.Type,
		SortOrder:     doc.SortOrder,
		IsDefault:     doc.Default,
		IsVisible:     orDefaultBool(doc.Visible, true),
		IsEnabled:     orDefaultBool(doc.Enabled, true),
		InStock:       doc.InStock,
		StockQuantity: doc.StockQuantity,
	}
	if doc.Pricing != nil {
		opt.Pricing = &catalog.OptionPricing{
			PriceDelta:    doc.Pricing.PriceDelta,
			PricingType:   catalog.PricingType(doc.Pricing.PricingType),
			PriceModifier: doc.Pricing.PriceModifier,
			PriceFormula:  doc.Pricing.PriceFormula,
			Currency:      doc.Pricing.Currency,
		}
	}
	return opt, nil
}

func buildRule(doc *ruleDoc) (*catalog.Rule, error) {
	if doc.ID == "" {
		return nil, &Error{Path: "rules", Reason: "rule missing id"}
	}

	rule := &catalog.Rule{
		ID:             doc.ID,
		Name:           doc.Name,
		Description:    doc.Description,
		Type:           catalog.RuleType(doc.Type),
		Priority:       doc.Priority,
		Enabled:        orDefaultBool(doc.Enabled, true),
		StopProcessing: doc.StopProcessing,
	}

	if doc.Condition != nil {
		rule.Condition = buildCondition(doc.Condition)
	}
	for i := range doc.Actions {
		a := &doc.Actions[i]
		if a.Type == "" {
			return nil, &Error{Path: rule.ID, Reason: "action missing type"}
		}
		rule.Actions = append(rule.Actions, &catalog.Action{
			Type:        catalog.ActionType(a.Type),
			ComponentID: a.ComponentID,
			OptionID:    a.OptionID,
			Value:       a.Value,
			Message:     a.Message,
		})
	}

	return rule, nil
}

func buildCondition(doc *conditionDoc) *catalog.Condition {
	cond := &catalog.Condition{
		Kind:        catalog.ConditionKind(doc.Kind),
		ComponentID: doc.ComponentID,
		OptionID:    doc.OptionID,
		Operator:    catalog.Operator(doc.Operator),
		Value:       doc.Value,
		Values:      doc.Values,
		Expression:  doc.Expression,
	}
	for i := range doc.Conditions {
		cond.Children = append(cond.Children, buildCondition(&doc.Conditions[i]))
	}
	return cond
}

func orDefaultBool(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func orDefaultInt(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
