package catalog

// SelectionState maps a component id to the shopper's selected option ids.
// A single-select component holds a one-element slice. An absent key, empty
// slice, or slice of empty strings all mean "no selection".
//
// The state is owned by the caller and treated as read-only by every
// evaluator; engines that need to derive a modified state work on a Clone.
type SelectionState map[string][]string

// Selected returns the non-empty option ids selected for the component.
func (s SelectionState) Selected(componentID string) []string {
	raw := s[componentID]
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, id := range raw {
		if id != "" {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Count returns the number of options selected for the component.
func (s SelectionState) Count(componentID string) int {
	return len(s.Selected(componentID))
}

// Has reports whether the option is selected within the component.
func (s SelectionState) Has(componentID, optionID string) bool {
	for _, id := range s.Selected(componentID) {
		if id == optionID {
			return true
		}
	}
	return false
}

// First returns the first selected option id, or "" when none.
func (s SelectionState) First(componentID string) string {
	sel := s.Selected(componentID)
	if len(sel) == 0 {
		return ""
	}
	return sel[0]
}

// Clone returns a deep copy of the selection state.
func (s SelectionState) Clone() SelectionState {
	out := make(SelectionState, len(s))
	for comp, opts := range s {
		copied := make([]string, len(opts))
		copy(copied, opts)
		out[comp] = copied
	}
	return out
}

// Single builds a one-element selection value.
func Single(optionID string) []string {
	return []string{optionID}
}
