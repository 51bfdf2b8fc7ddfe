package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"mosaic-hq/configurator/pkg/catalog"
	"mosaic-hq/configurator/pkg/engine"
)

// ErrNilDescriptor is returned when the engine is constructed or updated
// with a nil catalog descriptor.
var ErrNilDescriptor = errors.New("validation: nil descriptor")

// Code identifies a class of validation issue.
type Code string

const (
	CodeRequiredComponent Code = "REQUIRED_COMPONENT"
	CodeMinSelections     Code = "MIN_SELECTIONS"
	CodeMaxSelections     Code = "MAX_SELECTIONS"
	CodeOutOfStock        Code = "OUT_OF_STOCK"
	CodeRuleError         Code = "RULE_ERROR"
	CodeRuleWarning       Code = "RULE_WARNING"
)

// Issue is one validation finding.
type Issue struct {
	Code        Code   `json:"code"`
	ComponentID string `json:"componentId,omitempty"`
	OptionID    string `json:"optionId,omitempty"`
	Message     string `json:"message"`

	// RuleID is set for issues raised by rule actions.
	RuleID string `json:"ruleId,omitempty"`
}

// Result is the outcome of a validation pass.
type Result struct {
	// Valid is true exactly when Errors is empty.
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Engine validates selection states against a catalog snapshot. It is safe
// for concurrent use; Update swaps the snapshot atomically.
type Engine struct {
	logger *slog.Logger

	mu   sync.RWMutex
	desc *catalog.Descriptor
}

// New builds a validation engine for the descriptor.
func New(desc *catalog.Descriptor, logger *slog.Logger) (*Engine, error) {
	if desc == nil {
		return nil, ErrNilDescriptor
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{desc: desc, logger: logger}, nil
}

// Update swaps in a new catalog snapshot.
func (e *Engine) Update(desc *catalog.Descriptor) error {
	if desc == nil {
		return ErrNilDescriptor
	}
	e.mu.Lock()
	e.desc = desc
	e.mu.Unlock()
	return nil
}

// Validate checks the selection state. The rules result must come from
// evaluating the same selection state against the same catalog snapshot;
// it carries the effective visibility, enablement and requirement flags
// plus any messages raised by matched rules. A nil result validates
// against the catalog's static flags alone.
func (e *Engine) Validate(sel catalog.SelectionState, rules *engine.Result) *Result {
	e.mu.RLock()
	desc := e.desc
	e.mu.RUnlock()

	if rules == nil {
		rules = &engine.Result{}
	}

	res := &Result{}

	for _, comp := range desc.Components {
		e.checkComponent(comp, sel, rules, res)
	}
	e.checkStock(desc, sel, res)

	for _, msg := range rules.Errors {
		res.Errors = append(res.Errors, Issue{Code: CodeRuleError, Message: msg.Text, RuleID: msg.RuleID})
	}
	for _, msg := range rules.Warnings {
		res.Warnings = append(res.Warnings, Issue{Code: CodeRuleWarning, Message: msg.Text, RuleID: msg.RuleID})
	}

	res.Valid = len(res.Errors) == 0
	return res
}

// checkComponent applies the required and selection-count constraints.
// Hidden and disabled components are skipped: the shopper cannot interact
// with them, so they cannot be held against the configuration.
func (e *Engine) checkComponent(comp *catalog.Component, sel catalog.SelectionState, rules *engine.Result, res *Result) {
	if !e.componentVisible(comp, rules) || !e.componentEnabled(comp, rules) {
		return
	}

	count := sel.Count(comp.ID)
	required := rules.Required(comp)

	if required && count == 0 {
		res.Errors = append(res.Errors, Issue{
			Code:        CodeRequiredComponent,
			ComponentID: comp.ID,
			Message:     fmt.Sprintf("%s requires a selection", comp.Name),
		})
	}

	if comp.MinSelections > 0 && count < comp.MinSelections {
		res.Errors = append(res.Errors, Issue{
			Code:        CodeMinSelections,
			ComponentID: comp.ID,
			Message:     fmt.Sprintf("%s needs at least %d selections, got %d", comp.Name, comp.MinSelections, count),
		})
	}
	if comp.MaxSelections > 0 && count > comp.MaxSelections {
		res.Errors = append(res.Errors, Issue{
			Code:        CodeMaxSelections,
			ComponentID: comp.ID,
			Message:     fmt.Sprintf("%s allows at most %d selections, got %d", comp.Name, comp.MaxSelections, count),
		})
	}
}

// checkStock flags selected options that cannot be ordered. Stock is
// checked independently of visibility: a rule hiding a component does not
// make its out-of-stock selection purchasable. Components are walked in
// catalog order so identical inputs produce identically ordered issues.
func (e *Engine) checkStock(desc *catalog.Descriptor, sel catalog.SelectionState, res *Result) {
	for _, comp := range desc.Components {
		for _, optionID := range sel.Selected(comp.ID) {
			opt, ok := comp.Option(optionID)
			if !ok {
				e.logger.Debug("selection references unknown option", "component", comp.ID, "option", optionID)
				continue
			}
			if !opt.Orderable() {
				res.Errors = append(res.Errors, Issue{
					Code:        CodeOutOfStock,
					ComponentID: comp.ID,
					OptionID:    optionID,
					Message:     fmt.Sprintf("%s is out of stock", opt.Name),
				})
			}
		}
	}
	for componentID := range sel {
		if _, ok := desc.Component(componentID); !ok {
			e.logger.Debug("selection references unknown component", "component", componentID)
		}
	}
}

func (e *Engine) componentVisible(comp *catalog.Component, rules *engine.Result) bool {
	if v, ok := rules.Visibility[comp.ID]; ok {
		return v
	}
	return comp.IsVisible
}

func (e *Engine) componentEnabled(comp *catalog.Component, rules *engine.Result) bool {
	if v, ok := rules.Enablement[comp.ID]; ok {
		return v
	}
	return comp.IsEnabled
}
