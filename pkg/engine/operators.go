package engine

import "mosaic-hq/configurator/pkg/catalog"

// evalOperator applies a simple condition's operator to the selection state.
// Unknown operators and unresolvable references evaluate to false.
func evalOperator(cond *catalog.Condition, sel catalog.SelectionState, desc *catalog.Descriptor) bool {
	selected := sel.Selected(cond.ComponentID)

	switch cond.Operator {
	case catalog.OperatorEquals:
		want, ok := asString(cond.Value)
		if !ok {
			return false
		}
		return len(selected) == 1 && selected[0] == want

	case catalog.OperatorNotEquals:
		want, ok := asString(cond.Value)
		if !ok {
			return false
		}
		return !(len(selected) == 1 && selected[0] == want)

	case catalog.OperatorIn:
		return containsAny(cond.Values, selected)

	case catalog.OperatorNotIn:
		return !containsAny(cond.Values, selected)

	case catalog.OperatorContains:
		want, ok := asString(cond.Value)
		if !ok {
			return false
		}
		return sel.Has(cond.ComponentID, want)

	case catalog.OperatorIsSelected:
		if cond.OptionID != "" {
			return sel.Has(cond.ComponentID, cond.OptionID)
		}
		return len(selected) > 0

	case catalog.OperatorIsNotSelected:
		if cond.OptionID != "" {
			return !sel.Has(cond.ComponentID, cond.OptionID)
		}
		return len(selected) == 0

	case catalog.OperatorIsEmpty:
		return len(selected) == 0

	case catalog.OperatorIsNotEmpty:
		return len(selected) > 0

	case catalog.OperatorCountEquals,
		catalog.OperatorCountLess,
		catalog.OperatorCountGreater,
		catalog.OperatorCountAtMost,
		catalog.OperatorCountAtLeast:
		want, ok := asNumber(cond.Value)
		if !ok {
			return false
		}
		return compareCount(cond.Operator, float64(len(selected)), want)

	case catalog.OperatorOptionType:
		want, ok := asString(cond.Value)
		if !ok {
			return false
		}
		return selectedTypeMatches(cond, selected, desc, want)

	default:
		return false
	}
}

func compareCount(op catalog.Operator, count, want float64) bool {
	switch op {
	case catalog.OperatorCountEquals:
		return count == want
	case catalog.OperatorCountLess:
		return count < want
	case catalog.OperatorCountGreater:
		return count > want
	case catalog.OperatorCountAtMost:
		return count <= want
	case catalog.OperatorCountAtLeast:
		return count >= want
	}
	return false
}

// selectedTypeMatches checks whether a selected option (the referenced one,
// or any selected option of the component) carries the wanted type.
func selectedTypeMatches(cond *catalog.Condition, selected []string, desc *catalog.Descriptor, want string) bool {
	comp, ok := desc.Component(cond.ComponentID)
	if !ok {
		return false
	}
	for _, id := range selected {
		if cond.OptionID != "" && id != cond.OptionID {
			continue
		}
		if opt, ok := comp.Option(id); ok && opt.Type == want {
			return true
		}
	}
	return false
}

func containsAny(set, selected []string) bool {
	for _, id := range selected {
		for _, want := range set {
			if id == want {
				return true
			}
		}
	}
	return false
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	}
	return 0, false
}
