// Package validation checks a selection state against the catalog's
// structural constraints and the rule engine's verdict.
//
// A configuration is valid when it has no errors: every effectively
// required component is selected, selection counts sit inside each
// component's bounds, nothing selected is out of stock, and no rule raised
// an error. Warnings are advisory and never affect validity.
package validation
