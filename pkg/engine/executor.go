package engine

import (
	"log/slog"

	"mosaic-hq/configurator/pkg/catalog"
	"mosaic-hq/configurator/pkg/pricing"
)

// DefaultExecutor is the built-in ActionExecutor. It writes flag actions
// into the effect maps with last-write-wins semantics and appends price
// modifications and messages in encounter order. Unknown action types are
// ignored.
type DefaultExecutor struct {
	logger *slog.Logger
}

// NewDefaultExecutor returns the built-in executor.
func NewDefaultExecutor(logger *slog.Logger) *DefaultExecutor {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultExecutor{logger: logger}
}

// Execute implements ActionExecutor.
func (e *DefaultExecutor) Execute(rule *catalog.Rule, effects *Effects) {
	for _, action := range rule.Actions {
		switch action.Type {
		case catalog.ActionShow:
			effects.Visibility[actionTarget(action)] = true
		case catalog.ActionHide:
			effects.Visibility[actionTarget(action)] = false

		case catalog.ActionEnable:
			effects.Enablement[actionTarget(action)] = true
		case catalog.ActionDisable:
			effects.Enablement[actionTarget(action)] = false

		case catalog.ActionRequire:
			effects.Requirements[action.ComponentID] = true
		case catalog.ActionUnrequire:
			effects.Requirements[action.ComponentID] = false

		case catalog.ActionSetDefault:
			effects.Defaults[action.ComponentID] = action.OptionID

		case catalog.ActionSetPrice, catalog.ActionAddPrice, catalog.ActionMultiplyPrice:
			effects.PriceModifications = append(effects.PriceModifications, pricing.Modification{
				ComponentID: action.ComponentID,
				Kind:        pricing.ModificationKind(action.Type),
				Value:       action.Value,
				RuleID:      rule.ID,
			})

		case catalog.ActionError:
			effects.Errors = append(effects.Errors, Message{RuleID: rule.ID, Text: action.Message})
		case catalog.ActionWarning:
			effects.Warnings = append(effects.Warnings, Message{RuleID: rule.ID, Text: action.Message})

		default:
			e.logger.Debug("skipping unknown action type", "rule", rule.ID, "type", action.Type)
		}
	}
}

// actionTarget resolves the id a visibility or enablement action addresses:
// the option when set, otherwise the component.
func actionTarget(a *catalog.Action) string {
	if a.OptionID != "" {
		return a.OptionID
	}
	return a.ComponentID
}
