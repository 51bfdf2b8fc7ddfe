package pricing

// ModificationKind selects how a rule-driven modification is applied.
type ModificationKind string

const (
	// ModSetPrice replaces the target amount with Value.
	ModSetPrice ModificationKind = "SET_PRICE"

	// ModAddPrice adds Value to the target amount.
	ModAddPrice ModificationKind = "ADD_PRICE"

	// ModMultiplyPrice multiplies the target amount by Value.
	ModMultiplyPrice ModificationKind = "MULTIPLY_PRICE"
)

// Modification is a price effect produced by a matched rule.
//
// With ComponentID set, the modification rewrites that component's
// contribution to the options total. With ComponentID empty, it applies to
// the running subtotal. Modifications are applied in slice order; they are
// cumulative, never deduplicated.
type Modification struct {
	ComponentID string
	Kind        ModificationKind
	Value       float64

	// RuleID records which rule produced the modification, for diagnostics.
	RuleID string
}

// Apply returns the amount after applying the modification.
func (m Modification) Apply(amount float64) float64 {
	switch m.Kind {
	case ModSetPrice:
		return m.Value
	case ModAddPrice:
		return amount + m.Value
	case ModMultiplyPrice:
		return amount * m.Value
	default:
		// Unknown kinds are ignored rather than corrupting the amount.
		return amount
	}
}
