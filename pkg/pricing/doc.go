// Package pricing computes price breakdowns for a selection state.
//
// The Calculator folds per-option pricing (fixed, percentage, replacement,
// formula) into an options total, applies rule-driven price modifications,
// then derives tax and total. Calculation is a pure function of the catalog
// snapshot and the inputs: identical inputs produce identical breakdowns,
// and stale or unknown ids contribute nothing instead of failing.
package pricing
