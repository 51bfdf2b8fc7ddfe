package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"mosaic-hq/configurator/pkg/catalog"
	"mosaic-hq/configurator/pkg/engine"
	"mosaic-hq/configurator/pkg/pricing"
	"mosaic-hq/configurator/pkg/telemetry/metrics"
	"mosaic-hq/configurator/pkg/validation"
)

// DefaultTTL is how long an untouched session stays alive.
const DefaultTTL = 24 * time.Hour

// Outcome bundles everything one evaluation pass derives from a session's
// selections.
type Outcome struct {
	Rules      *engine.Result     `json:"rules"`
	Price      *pricing.Breakdown `json:"price"`
	Validation *validation.Result `json:"validation"`
}

// ManagerConfig carries the manager's collaborators and tunables.
type ManagerConfig struct {
	// TTL is the idle lifetime granted on every mutation. Zero uses
	// DefaultTTL.
	TTL time.Duration

	// Engine configures the rules engine. Nil uses engine defaults.
	Engine *engine.Config

	// Metrics receives instrumentation. Nil disables recording.
	Metrics *metrics.Metrics

	Logger *slog.Logger
}

// Manager owns the session write path for one catalog. Every mutation runs
// the rules, reprices and revalidates before the session is persisted.
type Manager struct {
	store     Store
	eng       *engine.RulesEngine
	validator *validation.Engine
	metrics   *metrics.Metrics
	ttl       time.Duration
	logger    *slog.Logger
	now       func() time.Time

	// calc is rebuilt on catalog updates while evaluations may be in
	// flight, so it is swapped atomically like the engine snapshots.
	calc atomic.Pointer[pricing.Calculator]
}

// NewManager builds a manager for the catalog descriptor.
func NewManager(desc *catalog.Descriptor, store Store, cfg *ManagerConfig) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session: nil store")
	}
	if cfg == nil {
		cfg = &ManagerConfig{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	eng, err := engine.New(desc, cfg.Engine)
	if err != nil {
		return nil, err
	}
	validator, err := validation.New(desc, logger)
	if err != nil {
		return nil, err
	}
	calc, err := pricing.NewCalculator(desc, logger)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		store:     store,
		eng:       eng,
		validator: validator,
		metrics:   cfg.Metrics,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
	}
	m.calc.Store(calc)
	return m, nil
}

// UpdateCatalog swaps in a new catalog snapshot. Existing sessions keep
// their selections and pick up the new rules and prices on their next
// mutation.
func (m *Manager) UpdateCatalog(desc *catalog.Descriptor) error {
	if err := m.eng.Update(desc); err != nil {
		return err
	}
	if err := m.validator.Update(desc); err != nil {
		return err
	}
	calc, err := pricing.NewCalculator(desc, m.logger)
	if err != nil {
		return err
	}
	m.calc.Store(calc)
	return nil
}

// Create starts a session seeded with the catalog's default options.
func (m *Manager) Create(ctx context.Context) (*Session, *Outcome, error) {
	desc := m.eng.Descriptor()
	sess := newSession(desc.ID, m.ttl, m.now().UTC())
	sess.Selections = defaultSelections(desc)

	outcome := m.evaluate(desc, sess)
	if err := m.store.Put(ctx, sess); err != nil {
		return nil, nil, err
	}
	if m.metrics != nil {
		m.metrics.ActiveSessions.Inc()
	}
	m.logger.Info("session created", "session", sess.ID, "catalog", desc.ID)
	return sess, outcome, nil
}

// Get returns the session by id.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	return m.store.Get(ctx, id)
}

// Evaluate recomputes the outcome for a stored session without mutating it.
func (m *Manager) Evaluate(ctx context.Context, id string) (*Outcome, error) {
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.evaluate(m.eng.Descriptor(), sess), nil
}

// Select adds an option to the component's selection. Single-select
// components replace their selection; multi-select components append if
// the option is not already present.
func (m *Manager) Select(ctx context.Context, id, componentID, optionID string) (*Session, *Outcome, error) {
	return m.mutate(ctx, id, func(desc *catalog.Descriptor, sel catalog.SelectionState) {
		comp, ok := desc.Component(componentID)
		if ok && comp.SelectionMode == catalog.SelectionMultiple {
			if !sel.Has(componentID, optionID) {
				sel[componentID] = append(sel.Selected(componentID), optionID)
			}
			return
		}
		sel[componentID] = catalog.Single(optionID)
	})
}

// Deselect removes an option from the component's selection.
func (m *Manager) Deselect(ctx context.Context, id, componentID, optionID string) (*Session, *Outcome, error) {
	return m.mutate(ctx, id, func(desc *catalog.Descriptor, sel catalog.SelectionState) {
		selected := sel.Selected(componentID)
		kept := selected[:0]
		for _, opt := range selected {
			if opt != optionID {
				kept = append(kept, opt)
			}
		}
		if len(kept) == 0 {
			delete(sel, componentID)
			return
		}
		sel[componentID] = kept
	})
}

// SetSelection replaces the component's whole selection.
func (m *Manager) SetSelection(ctx context.Context, id, componentID string, optionIDs []string) (*Session, *Outcome, error) {
	return m.mutate(ctx, id, func(desc *catalog.Descriptor, sel catalog.SelectionState) {
		if len(optionIDs) == 0 {
			delete(sel, componentID)
			return
		}
		sel[componentID] = append([]string(nil), optionIDs...)
	})
}

// Reset restores the catalog's default selections.
func (m *Manager) Reset(ctx context.Context, id string) (*Session, *Outcome, error) {
	return m.mutate(ctx, id, func(desc *catalog.Descriptor, sel catalog.SelectionState) {
		for componentID := range sel {
			delete(sel, componentID)
		}
		for componentID, optionIDs := range defaultSelections(desc) {
			sel[componentID] = optionIDs
		}
	})
}

// Save parks the session for later.
func (m *Manager) Save(ctx context.Context, id string) (*Session, error) {
	return m.transition(ctx, id, StatusSaved, nil)
}

// Complete finalizes the session for checkout. The configuration must be
// valid.
func (m *Manager) Complete(ctx context.Context, id string) (*Session, error) {
	sess, err := m.transition(ctx, id, StatusCompleted, func(sess *Session, outcome *Outcome) error {
		if !outcome.Validation.Valid {
			return ErrInvalidConfiguration
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if m.metrics != nil {
		m.metrics.ActiveSessions.Dec()
	}
	return sess, nil
}

// Abandon discards the session.
func (m *Manager) Abandon(ctx context.Context, id string) (*Session, error) {
	sess, err := m.transition(ctx, id, StatusAbandoned, nil)
	if err != nil {
		return nil, err
	}
	if m.metrics != nil {
		m.metrics.ActiveSessions.Dec()
	}
	return sess, nil
}

// Sweep expires every mutable session past its deadline. The Sweeper calls
// this on schedule; it is exported for manual runs.
func (m *Manager) Sweep(ctx context.Context) (int64, error) {
	n, err := m.store.ExpireBefore(ctx, m.now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		if m.metrics != nil {
			m.metrics.SessionsExpired.Add(float64(n))
			m.metrics.ActiveSessions.Sub(float64(n))
		}
		m.logger.Info("sessions expired", "count", n)
	}
	return n, nil
}

func (m *Manager) mutate(ctx context.Context, id string, apply func(*catalog.Descriptor, catalog.SelectionState)) (*Session, *Outcome, error) {
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !sess.Status.Mutable() {
		return nil, nil, fmt.Errorf("%w: %s", ErrImmutable, sess.Status)
	}

	desc := m.eng.Descriptor()
	apply(desc, sess.Selections)

	outcome := m.evaluate(desc, sess)
	now := m.now().UTC()
	sess.Status = StatusActive
	sess.UpdatedAt = now
	sess.ExpiresAt = now.Add(m.ttl)

	if err := m.store.Put(ctx, sess); err != nil {
		return nil, nil, err
	}
	return sess, outcome, nil
}

func (m *Manager) transition(ctx context.Context, id string, to Status, guard func(*Session, *Outcome) error) (*Session, error) {
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sess.Status.Mutable() {
		return nil, fmt.Errorf("%w: %s", ErrImmutable, sess.Status)
	}

	outcome := m.evaluate(m.eng.Descriptor(), sess)
	if guard != nil {
		if err := guard(sess, outcome); err != nil {
			return nil, err
		}
	}

	sess.Status = to
	sess.UpdatedAt = m.now().UTC()
	if err := m.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	m.logger.Info("session transitioned", "session", sess.ID, "status", to)
	return sess, nil
}

// evaluate runs rules, pricing and validation for the session's selections
// and refreshes the session's derived fields.
func (m *Manager) evaluate(desc *catalog.Descriptor, sess *Session) *Outcome {
	start := m.now()
	rules := m.eng.Evaluate(sess.Selections)

	priceStart := m.now()
	price := m.calc.Load().Calculate(sess.Selections, rules.PriceModifications)
	verdict := m.validator.Validate(sess.Selections, rules)

	sess.Price = price
	sess.Valid = verdict.Valid

	if m.metrics != nil {
		m.metrics.Evaluations.WithLabelValues(desc.ID).Inc()
		m.metrics.RulesApplied.WithLabelValues(desc.ID).Add(float64(len(rules.AppliedRules)))
		m.metrics.EvaluationDuration.WithLabelValues(desc.ID).Observe(m.now().Sub(start).Seconds())
		m.metrics.PriceCalculations.Inc()
		m.metrics.PriceDuration.Observe(m.now().Sub(priceStart).Seconds())
		for _, issue := range verdict.Errors {
			m.metrics.ValidationFailures.WithLabelValues(string(issue.Code)).Inc()
		}
	}

	return &Outcome{Rules: rules, Price: price, Validation: verdict}
}

func defaultSelections(desc *catalog.Descriptor) catalog.SelectionState {
	sel := catalog.SelectionState{}
	for _, comp := range desc.Components {
		if opt, ok := comp.DefaultOption(); ok {
			sel[comp.ID] = catalog.Single(opt.ID)
		}
	}
	return sel
}
