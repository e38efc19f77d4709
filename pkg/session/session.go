// Package session stores booking drafts: the seats a passenger has picked
// for one trip but not yet booked.
//
// A [Draft] is keyed by its [seatdata.Key], so each trip, model and date
// has at most one draft per store. Drafts expire after [DefaultTTL]; an
// expired draft reads as absent.
//
// # Usage
//
//	store, err := session.NewFileStore("") // ~/.config/seatplan/drafts/
//
//	d, err := store.Get(ctx, key)
//	if d == nil {
//	    d = session.New(key, session.DefaultTTL)
//	}
//	d.SetSelection(selection.Toggle(d.Selection(), 12, seat.Status))
//	err = store.Set(ctx, d)
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/busline/seatplan/pkg/integrations/seatdata"
	"github.com/busline/seatplan/pkg/selection"
)

// DefaultTTL is how long an untouched draft survives.
const DefaultTTL = 2 * time.Hour

// Draft is a pending seat selection.
type Draft struct {
	ID        string       `json:"id"`
	Key       seatdata.Key `json:"key"`
	Seats     []int        `json:"seats"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	ExpiresAt time.Time    `json:"expires_at"`

	ttl time.Duration
}

// New creates an empty draft for key with a random ID.
func New(key seatdata.Key, ttl time.Duration) *Draft {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	return &Draft{
		ID:        uuid.NewString(),
		Key:       key,
		Seats:     []int{},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
		ttl:       ttl,
	}
}

// IsExpired returns true if the draft has expired.
func (d *Draft) IsExpired() bool {
	return time.Now().After(d.ExpiresAt)
}

// Selection returns the draft's seats as a set.
func (d *Draft) Selection() selection.Set {
	return selection.New(d.Seats...)
}

// SetSelection replaces the draft's seats and extends its expiry.
func (d *Draft) SetSelection(s selection.Set) {
	d.Seats = s.Numbers()
	d.touch()
}

func (d *Draft) touch() {
	ttl := d.ttl
	if ttl <= 0 {
		ttl = d.ExpiresAt.Sub(d.UpdatedAt)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	d.UpdatedAt = time.Now()
	d.ExpiresAt = d.UpdatedAt.Add(ttl)
}

// Store is the interface for draft storage backends.
type Store interface {
	// Get retrieves the draft for key.
	// Returns nil, nil if no live draft exists.
	Get(ctx context.Context, key seatdata.Key) (*Draft, error)

	// Set stores a draft, replacing any draft for the same key.
	Set(ctx context.Context, d *Draft) error

	// Delete removes the draft for key.
	Delete(ctx context.Context, key seatdata.Key) error

	// List returns all live drafts, oldest first.
	List(ctx context.Context) ([]*Draft, error)

	// Cleanup removes expired drafts and reports how many were removed.
	Cleanup(ctx context.Context) (int, error)
}
