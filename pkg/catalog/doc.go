// Package catalog defines the data model for configurable products: the
// components a shopper can customize, the options within each component,
// per-option pricing, and the merchant-authored rules that react to the
// shopper's selections.
//
// A Descriptor is an immutable snapshot of a single product's catalog.
// Evaluation engines (pkg/engine, pkg/pricing, pkg/validation) read a
// Descriptor and never mutate it; catalog updates are modeled as a new
// Descriptor value swapped in atomically.
package catalog
