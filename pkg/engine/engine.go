package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"mosaic-hq/configurator/pkg/catalog"
)

// snapshot bundles the descriptor with its pre-ordered rule list. Engines
// swap snapshots atomically so in-flight evaluations keep a consistent view.
type snapshot struct {
	desc  *catalog.Descriptor
	rules []*catalog.Rule
}

// RulesEngine evaluates a catalog's rules against selection states.
// It is safe for concurrent use; Update may be called while evaluations
// are in flight.
type RulesEngine struct {
	cfg      *Config
	matcher  ConditionMatcher
	executor ActionExecutor
	logger   *slog.Logger

	mu   sync.RWMutex
	snap *snapshot
}

// New builds a RulesEngine for the descriptor. A nil config uses
// DefaultConfig.
func New(desc *catalog.Descriptor, cfg *Config) (*RulesEngine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	matcher := cfg.Matcher
	if matcher == nil {
		matcher = NewDefaultMatcher(cfg.MaxConditionDepth, logger)
	}
	executor := cfg.Executor
	if executor == nil {
		executor = NewDefaultExecutor(logger)
	}

	e := &RulesEngine{
		cfg:      cfg,
		matcher:  matcher,
		executor: executor,
		logger:   logger,
	}
	if err := e.Update(desc); err != nil {
		return nil, err
	}
	return e, nil
}

// Update swaps in a new catalog snapshot. On error the previous snapshot
// stays active.
func (e *RulesEngine) Update(desc *catalog.Descriptor) error {
	if desc == nil {
		return ErrNilDescriptor
	}
	if len(desc.Rules) > e.cfg.MaxRules {
		return fmt.Errorf("%w: %d rules, limit %d", ErrTooManyRules, len(desc.Rules), e.cfg.MaxRules)
	}

	snap := &snapshot{
		desc:  desc,
		rules: orderRules(desc.Rules),
	}

	e.mu.Lock()
	e.snap = snap
	e.mu.Unlock()

	e.logger.Debug("catalog snapshot updated", "catalog", desc.ID, "rules", len(snap.rules))
	return nil
}

// Descriptor returns the active catalog snapshot.
func (e *RulesEngine) Descriptor() *catalog.Descriptor {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap.desc
}

// Evaluate runs every enabled rule against the selection state and returns
// the folded result. Rules run in descending priority; a matched rule with
// StopProcessing halts the pass. Evaluation itself never fails: rules whose
// conditions cannot be resolved simply do not match.
func (e *RulesEngine) Evaluate(sel catalog.SelectionState) *Result {
	e.mu.RLock()
	snap := e.snap
	e.mu.RUnlock()

	effects := newEffects()
	applied := make([]string, 0, 4)

	for _, rule := range snap.rules {
		if !rule.IsEnabled() {
			continue
		}
		if !e.matcher.Match(rule.Condition, sel, snap.desc) {
			continue
		}

		e.executor.Execute(rule, effects)
		applied = append(applied, rule.ID)

		if rule.StopProcessing {
			e.logger.Debug("rule halted evaluation", "rule", rule.ID)
			break
		}
	}

	return &Result{
		Visibility:         effects.Visibility,
		Requirements:       effects.Requirements,
		Enablement:         effects.Enablement,
		Defaults:           effects.Defaults,
		PriceModifications: effects.PriceModifications,
		AppliedRules:       applied,
		Errors:             effects.Errors,
		Warnings:           effects.Warnings,
	}
}
