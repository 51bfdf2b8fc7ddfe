package engine

import (
	"testing"

	"mosaic-hq/configurator/pkg/catalog"
	"mosaic-hq/configurator/pkg/pricing"
)

func TestExecutorFlagActions(t *testing.T) {
	tests := []struct {
		name   string
		action *catalog.Action
		check  func(t *testing.T, fx *Effects)
	}{
		{
			name:   "show component",
			action: &catalog.Action{Type: catalog.ActionShow, ComponentID: "engraving"},
			check: func(t *testing.T, fx *Effects) {
				if v, ok := fx.Visibility["engraving"]; !ok || !v {
					t.Errorf("Visibility[engraving] = %v, %v; want true", v, ok)
				}
			},
		},
		{
			name:   "hide targets option when set",
			action: &catalog.Action{Type: catalog.ActionHide, ComponentID: "color", OptionID: "red"},
			check: func(t *testing.T, fx *Effects) {
				if v, ok := fx.Visibility["red"]; !ok || v {
					t.Errorf("Visibility[red] = %v, %v; want false", v, ok)
				}
				if _, ok := fx.Visibility["color"]; ok {
					t.Error("component should not be touched when the action names an option")
				}
			},
		},
		{
			name:   "disable option",
			action: &catalog.Action{Type: catalog.ActionDisable, ComponentID: "color", OptionID: "blue"},
			check: func(t *testing.T, fx *Effects) {
				if v, ok := fx.Enablement["blue"]; !ok || v {
					t.Errorf("Enablement[blue] = %v, %v; want false", v, ok)
				}
			},
		},
		{
			name:   "require component",
			action: &catalog.Action{Type: catalog.ActionRequire, ComponentID: "size"},
			check: func(t *testing.T, fx *Effects) {
				if v, ok := fx.Requirements["size"]; !ok || !v {
					t.Errorf("Requirements[size] = %v, %v; want true", v, ok)
				}
			},
		},
		{
			name:   "set default",
			action: &catalog.Action{Type: catalog.ActionSetDefault, ComponentID: "color", OptionID: "blue"},
			check: func(t *testing.T, fx *Effects) {
				if fx.Defaults["color"] != "blue" {
					t.Errorf("Defaults[color] = %q, want blue", fx.Defaults["color"])
				}
			},
		},
		{
			name:   "error message",
			action: &catalog.Action{Type: catalog.ActionError, Message: "no"},
			check: func(t *testing.T, fx *Effects) {
				if len(fx.Errors) != 1 || fx.Errors[0].Text != "no" || fx.Errors[0].RuleID != "r1" {
					t.Errorf("Errors = %+v", fx.Errors)
				}
			},
		},
		{
			name:   "warning message",
			action: &catalog.Action{Type: catalog.ActionWarning, Message: "careful"},
			check: func(t *testing.T, fx *Effects) {
				if len(fx.Warnings) != 1 || fx.Warnings[0].Text != "careful" {
					t.Errorf("Warnings = %+v", fx.Warnings)
				}
			},
		},
		{
			name:   "unknown action type ignored",
			action: &catalog.Action{Type: "EXPLODE", ComponentID: "color"},
			check: func(t *testing.T, fx *Effects) {
				if len(fx.Visibility)+len(fx.Enablement)+len(fx.Requirements) != 0 {
					t.Error("unknown action should leave effects untouched")
				}
			},
		},
	}

	exec := NewDefaultExecutor(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newEffects()
			exec.Execute(&catalog.Rule{ID: "r1", Actions: []*catalog.Action{tt.action}}, fx)
			tt.check(t, fx)
		})
	}
}

func TestExecutorPriceActions(t *testing.T) {
	exec := NewDefaultExecutor(nil)
	fx := newEffects()
	rule := &catalog.Rule{
		ID: "pricing",
		Actions: []*catalog.Action{
			{Type: catalog.ActionAddPrice, ComponentID: "engraving", Value: 15},
			{Type: catalog.ActionMultiplyPrice, Value: 1.1},
		},
	}
	exec.Execute(rule, fx)

	if len(fx.PriceModifications) != 2 {
		t.Fatalf("got %d modifications, want 2", len(fx.PriceModifications))
	}
	first := fx.PriceModifications[0]
	if first.Kind != pricing.ModAddPrice || first.ComponentID != "engraving" || first.Value != 15 || first.RuleID != "pricing" {
		t.Errorf("first modification = %+v", first)
	}
	second := fx.PriceModifications[1]
	if second.Kind != pricing.ModMultiplyPrice || second.ComponentID != "" || second.Value != 1.1 {
		t.Errorf("second modification = %+v", second)
	}
}

func TestExecutorLastWriteWins(t *testing.T) {
	exec := NewDefaultExecutor(nil)
	fx := newEffects()
	exec.Execute(&catalog.Rule{ID: "a", Actions: []*catalog.Action{
		{Type: catalog.ActionHide, ComponentID: "engraving"},
	}}, fx)
	exec.Execute(&catalog.Rule{ID: "b", Actions: []*catalog.Action{
		{Type: catalog.ActionShow, ComponentID: "engraving"},
	}}, fx)

	if v := fx.Visibility["engraving"]; !v {
		t.Errorf("Visibility[engraving] = %v, want true after later SHOW", v)
	}
}
