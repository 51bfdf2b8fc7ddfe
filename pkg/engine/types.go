package engine

import (
	"mosaic-hq/configurator/pkg/catalog"
	"mosaic-hq/configurator/pkg/pricing"
)

// ConditionMatcher decides whether a rule's condition holds against the
// current selection state. A nil condition always matches. Matchers must be
// safe for concurrent use.
type ConditionMatcher interface {
	Match(cond *catalog.Condition, sel catalog.SelectionState, desc *catalog.Descriptor) bool
}

// ActionExecutor translates a matched rule's actions into effects on the
// evaluation result. Executors must be safe for concurrent use.
type ActionExecutor interface {
	Execute(rule *catalog.Rule, effects *Effects)
}

// Message is a rule-emitted diagnostic shown to the shopper.
type Message struct {
	RuleID  string `json:"ruleId"`
	Text    string `json:"text"`
	Context string `json:"context,omitempty"`
}

// Effects is the mutable accumulator matched rules write into. Flag maps
// follow last-write-wins in rule application order; modifications and
// messages accumulate.
type Effects struct {
	Visibility         map[string]bool
	Requirements       map[string]bool
	Enablement         map[string]bool
	Defaults           map[string]string
	PriceModifications []pricing.Modification
	Errors             []Message
	Warnings           []Message
}

func newEffects() *Effects {
	return &Effects{
		Visibility:   make(map[string]bool),
		Requirements: make(map[string]bool),
		Enablement:   make(map[string]bool),
		Defaults:     make(map[string]string),
	}
}

// Result is an immutable snapshot of one evaluation pass.
type Result struct {
	// Visibility holds explicit show/hide decisions keyed by component or
	// option id. Ids absent from the map keep their catalog default of
	// visible.
	Visibility map[string]bool `json:"visibility"`

	// Requirements holds explicit require/unrequire decisions keyed by
	// component id. Ids absent from the map keep the component's Required
	// flag from the catalog.
	Requirements map[string]bool `json:"requirements"`

	// Enablement holds explicit enable/disable decisions keyed by
	// component or option id. Absent ids default to enabled.
	Enablement map[string]bool `json:"enablement"`

	// Defaults maps component id to the option a SET_DEFAULT action chose.
	Defaults map[string]string `json:"defaults,omitempty"`

	// PriceModifications are handed to the pricing calculator in order.
	PriceModifications []pricing.Modification `json:"priceModifications"`

	// AppliedRules lists the ids of rules whose condition matched, in
	// application order.
	AppliedRules []string `json:"appliedRules"`

	Errors   []Message `json:"errors"`
	Warnings []Message `json:"warnings"`
}

// Visible reports the effective visibility for id.
func (r *Result) Visible(id string) bool {
	if v, ok := r.Visibility[id]; ok {
		return v
	}
	return true
}

// Enabled reports the effective enablement for id.
func (r *Result) Enabled(id string) bool {
	if v, ok := r.Enablement[id]; ok {
		return v
	}
	return true
}

// Required reports the effective requirement for the component, falling
// back to its catalog flag when no rule touched it.
func (r *Result) Required(c *catalog.Component) bool {
	if v, ok := r.Requirements[c.ID]; ok {
		return v
	}
	return c.IsRequired
}
