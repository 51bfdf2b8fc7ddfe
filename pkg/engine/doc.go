// Package engine evaluates merchant-authored rules against a shopper's
// live selection state.
//
// The RulesEngine walks every enabled rule in priority order, asks the
// condition matcher whether the rule applies, and folds the matched rules'
// actions into a single Result: visibility, requirement and enablement
// flags (last write wins, deterministic by rule order), plus accumulated
// price modifications and error/warning messages.
//
// Evaluation is a pure function of the catalog snapshot and the selection
// state. It never returns an error for data-driven conditions: a rule
// referencing a retired component or option simply does not match. The only
// mutating operation is Update, which atomically swaps the catalog snapshot.
package engine
