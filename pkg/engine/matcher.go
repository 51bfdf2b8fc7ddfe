package engine

import (
	"log/slog"

	jsonlogic "github.com/diegoholiveira/jsonlogic/v3"

	"mosaic-hq/configurator/pkg/catalog"
)

// DefaultMatcher is the built-in ConditionMatcher. It evaluates simple
// operators directly and hands expression nodes to JsonLogic.
//
// Matching is deliberately fail-open: a malformed node, an unknown kind or
// an over-deep tree evaluates to false so one bad rule cannot block the
// rest of the catalog.
type DefaultMatcher struct {
	maxDepth int
	logger   *slog.Logger
}

// NewDefaultMatcher returns a matcher with the given nesting cap.
func NewDefaultMatcher(maxDepth int, logger *slog.Logger) *DefaultMatcher {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxConditionDepth
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultMatcher{maxDepth: maxDepth, logger: logger}
}

// Match implements ConditionMatcher. A nil condition always matches.
func (m *DefaultMatcher) Match(cond *catalog.Condition, sel catalog.SelectionState, desc *catalog.Descriptor) bool {
	if cond == nil {
		return true
	}
	return m.match(cond, sel, desc, 0)
}

func (m *DefaultMatcher) match(cond *catalog.Condition, sel catalog.SelectionState, desc *catalog.Descriptor, depth int) bool {
	if depth >= m.maxDepth {
		m.logger.Debug("condition tree exceeds depth limit", "maxDepth", m.maxDepth)
		return false
	}

	switch cond.Kind {
	case catalog.ConditionKindAll:
		if len(cond.Children) == 0 {
			return false
		}
		for _, child := range cond.Children {
			if !m.match(child, sel, desc, depth+1) {
				return false
			}
		}
		return true

	case catalog.ConditionKindAny:
		for _, child := range cond.Children {
			if m.match(child, sel, desc, depth+1) {
				return true
			}
		}
		return false

	case catalog.ConditionKindNot:
		if len(cond.Children) != 1 {
			return false
		}
		return !m.match(cond.Children[0], sel, desc, depth+1)

	case catalog.ConditionKindExpression:
		return m.matchExpression(cond, sel)

	case catalog.ConditionKindSimple, "":
		return evalOperator(cond, sel, desc)

	default:
		m.logger.Debug("unknown condition kind", "kind", cond.Kind)
		return false
	}
}

// matchExpression evaluates a JsonLogic expression against a document
// exposing the selection state:
//
//	{"selections": {"color": ["red"]}, "counts": {"color": 1}}
func (m *DefaultMatcher) matchExpression(cond *catalog.Condition, sel catalog.SelectionState) bool {
	if len(cond.Expression) == 0 {
		return false
	}

	selections := make(map[string]any, len(sel))
	counts := make(map[string]any, len(sel))
	for componentID := range sel {
		ids := sel.Selected(componentID)
		values := make([]any, len(ids))
		for i, id := range ids {
			values[i] = id
		}
		selections[componentID] = values
		counts[componentID] = float64(len(ids))
	}
	data := map[string]any{
		"selections": selections,
		"counts":     counts,
	}

	out, err := jsonlogic.ApplyInterface(map[string]any(cond.Expression), data)
	if err != nil {
		m.logger.Debug("expression evaluation failed", "error", err)
		return false
	}
	return truthy(out)
}

func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	case nil:
		return false
	}
	return false
}
