package catalog

// RuleType categorizes a rule for merchant tooling. The engine treats all
// types identically; behavior is determined by conditions and actions alone.
type RuleType string

const (
	RuleTypeDependency  RuleType = "DEPENDENCY"
	RuleTypeExclusion   RuleType = "EXCLUSION"
	RuleTypeCombination RuleType = "COMBINATION"
	RuleTypeVisibility  RuleType = "VISIBILITY"
	RuleTypePricing     RuleType = "PRICING"
	RuleTypeValidation  RuleType = "VALIDATION"
)

// ConditionKind represents the type of a condition node.
type ConditionKind string

const (
	// ConditionKindSimple compares a component's selection with an operator.
	ConditionKindSimple ConditionKind = "simple"

	// ConditionKindAll matches when every child matches (AND).
	ConditionKindAll ConditionKind = "all"

	// ConditionKindAny matches when at least one child matches (OR).
	ConditionKindAny ConditionKind = "any"

	// ConditionKindNot negates its single child.
	ConditionKindNot ConditionKind = "not"

	// ConditionKindExpression evaluates a JsonLogic expression against a
	// snapshot of the selection state.
	ConditionKindExpression ConditionKind = "expression"
)

// Operator is the comparison applied by a simple condition.
type Operator string

const (
	// OperatorEquals matches when the component's selection is exactly the
	// condition value (single selection) .
	OperatorEquals Operator = "EQUALS"

	// OperatorNotEquals is the negation of OperatorEquals.
	OperatorNotEquals Operator = "NOT_EQUALS"

	// OperatorIn matches when the selection is one of the condition values.
	OperatorIn Operator = "IN"

	// OperatorNotIn is the negation of OperatorIn.
	OperatorNotIn Operator = "NOT_IN"

	// OperatorContains matches when a multi-selection contains the value.
	OperatorContains Operator = "CONTAINS"

	// OperatorIsSelected matches when the referenced option (or, with no
	// option id, any option of the component) is selected.
	OperatorIsSelected Operator = "IS_SELECTED"

	// OperatorIsNotSelected is the negation of OperatorIsSelected.
	OperatorIsNotSelected Operator = "IS_NOT_SELECTED"

	// OperatorIsEmpty matches when the component has no selection.
	OperatorIsEmpty Operator = "IS_EMPTY"

	// OperatorIsNotEmpty matches when the component has any selection.
	OperatorIsNotEmpty Operator = "IS_NOT_EMPTY"

	// Count operators compare the component's selection count with the
	// numeric condition value.
	OperatorCountEquals  Operator = "COUNT_EQUALS"
	OperatorCountLess    Operator = "COUNT_LESS_THAN"
	OperatorCountGreater Operator = "COUNT_GREATER_THAN"
	OperatorCountAtMost  Operator = "COUNT_AT_MOST"
	OperatorCountAtLeast Operator = "COUNT_AT_LEAST"

	// OperatorOptionType matches when the referenced option's type equals
	// the condition value.
	OperatorOptionType Operator = "OPTION_TYPE"
)

// Condition is a node in a rule's condition tree.
//
// A simple node (Kind empty or ConditionKindSimple) applies Operator to the
// selection of ComponentID. Logical nodes combine Children. Expression nodes
// carry a JsonLogic map in Expression.
//
// Conditions referencing unknown components or options evaluate to false
// rather than failing: a rule written against a retired option must not take
// down the whole evaluation.
type Condition struct {
	Kind        ConditionKind
	ComponentID string
	OptionID    string
	Operator    Operator

	// Value is the comparison operand: an option id for EQUALS/CONTAINS, a
	// number for count operators, a type name for OPTION_TYPE.
	Value any

	// Values is the operand set for IN/NOT_IN.
	Values []string

	// Expression is the JsonLogic tree for ConditionKindExpression.
	Expression map[string]any

	Children []*Condition
}

// IsLogical reports whether the node combines child conditions.
func (c *Condition) IsLogical() bool {
	return c.Kind == ConditionKindAll || c.Kind == ConditionKindAny || c.Kind == ConditionKindNot
}

// ActionType represents the kind of effect a matched rule produces.
type ActionType string

const (
	// ActionShow / ActionHide toggle visibility of a component or option.
	ActionShow ActionType = "SHOW"
	ActionHide ActionType = "HIDE"

	// ActionEnable / ActionDisable toggle selectability of a component or option.
	ActionEnable  ActionType = "ENABLE"
	ActionDisable ActionType = "DISABLE"

	// ActionRequire / ActionUnrequire toggle whether a component must have a
	// selection.
	ActionRequire   ActionType = "REQUIRE"
	ActionUnrequire ActionType = "UNREQUIRE"

	// ActionSetDefault suggests an option the UI should pre-select.
	ActionSetDefault ActionType = "SET_DEFAULT"

	// Price actions modify a component's contribution (ComponentID set) or
	// the running subtotal (ComponentID empty).
	ActionSetPrice      ActionType = "SET_PRICE"
	ActionAddPrice      ActionType = "ADD_PRICE"
	ActionMultiplyPrice ActionType = "MULTIPLY_PRICE"

	// ActionError / ActionWarning surface a merchant-authored message.
	// Errors block validity; warnings are advisory.
	ActionError   ActionType = "ERROR"
	ActionWarning ActionType = "WARNING"
)

// Action is a single effect attached to a rule.
type Action struct {
	Type ActionType

	// ComponentID / OptionID identify the target. Visibility and enablement
	// actions target the option when OptionID is set, otherwise the
	// component. Price actions with an empty ComponentID target the subtotal.
	ComponentID string
	OptionID    string

	// Value is the magnitude for price actions.
	Value float64

	// Message is the text for ERROR/WARNING actions.
	Message string
}

// Rule pairs a condition tree with the actions to execute when it matches.
type Rule struct {
	ID          string
	Name        string
	Description string
	Type        RuleType

	// Condition is the root of the condition tree; nil always matches.
	Condition *Condition

	Actions []*Action

	// Priority orders evaluation: higher runs first. Rules sharing a
	// priority keep their catalog order.
	Priority int

	// Enabled gates evaluation; parsers default it to true.
	Enabled bool

	// StopProcessing halts evaluation of later rules once this rule matches.
	StopProcessing bool
}

// IsEnabled reports whether the rule participates in evaluation.
func (r *Rule) IsEnabled() bool {
	return r.Enabled
}

// HasActionType reports whether the rule carries at least one action of the
// given type.
func (r *Rule) HasActionType(t ActionType) bool {
	for _, action := range r.Actions {
		if action.Type == t {
			return true
		}
	}
	return false
}
