package session

import (
	"time"

	"github.com/google/uuid"

	"mosaic-hq/configurator/pkg/catalog"
	"mosaic-hq/configurator/pkg/pricing"
)

// Status is the lifecycle state of a session.
type Status string

const (
	// StatusActive sessions accept selection changes.
	StatusActive Status = "ACTIVE"

	// StatusSaved sessions were explicitly parked by the shopper.
	StatusSaved Status = "SAVED"

	// StatusCompleted sessions passed validation and were handed to
	// checkout. They are immutable.
	StatusCompleted Status = "COMPLETED"

	// StatusAbandoned sessions were explicitly discarded.
	StatusAbandoned Status = "ABANDONED"

	// StatusExpired sessions ran past their retention deadline.
	StatusExpired Status = "EXPIRED"
)

// Mutable reports whether the session still accepts selection changes.
func (s Status) Mutable() bool {
	return s == StatusActive || s == StatusSaved
}

// Session is one shopper's configuration in progress.
type Session struct {
	ID         string                 `json:"id"`
	CatalogID  string                 `json:"catalogId"`
	Status     Status                 `json:"status"`
	Selections catalog.SelectionState `json:"selections"`

	// Price is the breakdown from the most recent evaluation.
	Price *pricing.Breakdown `json:"price,omitempty"`

	// Valid mirrors the most recent validation verdict.
	Valid bool `json:"valid"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func newSession(catalogID string, ttl time.Duration, now time.Time) *Session {
	return &Session{
		ID:         uuid.NewString(),
		CatalogID:  catalogID,
		Status:     StatusActive,
		Selections: catalog.SelectionState{},
		CreatedAt:  now,
		UpdatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
}

// Clone returns a deep copy; stores hand out clones so callers cannot
// mutate persisted state behind the manager's back.
func (s *Session) Clone() *Session {
	out := *s
	out.Selections = s.Selections.Clone()
	if s.Price != nil {
		price := *s.Price
		price.Items = append([]pricing.Item(nil), s.Price.Items...)
		if s.Price.RuleAdjustments != nil {
			v := *s.Price.RuleAdjustments
			price.RuleAdjustments = &v
		}
		out.Price = &price
	}
	return &out
}
