// Package session tracks a shopper's configuration session: the live
// selection state plus the rule, price and validation outcome derived from
// it.
//
// The Manager is the write path. Every mutation re-evaluates the catalog's
// rules, reprices the configuration and revalidates it, so a persisted
// session always carries an outcome consistent with its selections.
package session
