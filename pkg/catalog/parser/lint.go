package parser

import (
	"fmt"

	"mosaic-hq/configurator/pkg/catalog"
)

// Lint reports referential problems the runtime tolerates: rules whose
// conditions or actions point at components or options missing from the
// catalog. Such rules fail open at evaluation time, so these are warnings
// for the catalog author, not load errors.
func Lint(desc *catalog.Descriptor) []string {
	var warnings []string

	for _, rule := range desc.Rules {
		warnings = append(warnings, lintCondition(desc, rule.ID, rule.Condition)...)

		if len(rule.Actions) == 0 {
			warnings = append(warnings, fmt.Sprintf("rule %s has no actions", rule.ID))
		}
		for _, action := range rule.Actions {
			warnings = append(warnings, lintAction(desc, rule.ID, action)...)
		}
	}
	return warnings
}

func lintCondition(desc *catalog.Descriptor, ruleID string, cond *catalog.Condition) []string {
	if cond == nil {
		return nil
	}

	var warnings []string
	if cond.IsLogical() || cond.Kind == catalog.ConditionKindExpression {
		for _, child := range cond.Children {
			warnings = append(warnings, lintCondition(desc, ruleID, child)...)
		}
		return warnings
	}

	comp, ok := desc.Component(cond.ComponentID)
	if !ok {
		return append(warnings, fmt.Sprintf("rule %s condition references unknown component %q", ruleID, cond.ComponentID))
	}
	if cond.OptionID != "" {
		if _, ok := comp.Option(cond.OptionID); !ok {
			warnings = append(warnings, fmt.Sprintf("rule %s condition references unknown option %q in component %q", ruleID, cond.OptionID, cond.ComponentID))
		}
	}
	return warnings
}

func lintAction(desc *catalog.Descriptor, ruleID string, action *catalog.Action) []string {
	// Message and subtotal price actions carry no target to check.
	if action.ComponentID == "" {
		return nil
	}

	comp, ok := desc.Component(action.ComponentID)
	if !ok {
		return []string{fmt.Sprintf("rule %s action %s targets unknown component %q", ruleID, action.Type, action.ComponentID)}
	}
	if action.OptionID != "" {
		if _, ok := comp.Option(action.OptionID); !ok {
			return []string{fmt.Sprintf("rule %s action %s targets unknown option %q in component %q", ruleID, action.Type, action.OptionID, action.ComponentID)}
		}
	}
	return nil
}
