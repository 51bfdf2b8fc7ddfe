package engine

import (
	"sort"

	"mosaic-hq/configurator/pkg/catalog"
)

// orderRules returns the rules sorted by descending priority. The sort is
// stable: rules sharing a priority keep their catalog order, so merchants
// can rely on list position as the tiebreaker.
func orderRules(rules []*catalog.Rule) []*catalog.Rule {
	ordered := make([]*catalog.Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})
	return ordered
}
