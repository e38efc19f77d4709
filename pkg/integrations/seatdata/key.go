package seatdata

import (
	"fmt"
	"strings"

	"github.com/busline/seatplan/pkg/cache"
	"github.com/busline/seatplan/pkg/errors"
	"github.com/busline/seatplan/pkg/seatmap"
)

// ErrIncompleteKey is returned when a fetch is attempted without a trip,
// bus model or departure date.
var ErrIncompleteKey error = errors.New(errors.ErrCodeIncompleteKey, "trip, bus model and departure date are required")

// Key identifies one seat snapshot. The zero value is incomplete.
type Key struct {
	TripID        string        `json:"trip_id"`
	BusModel      seatmap.Model `json:"bus_model"`
	DepartureDate string        `json:"departure_date"`
}

// NewKey trims its inputs and lowercases the model name.
func NewKey(tripID, busModel, departureDate string) Key {
	return Key{
		TripID:        strings.TrimSpace(tripID),
		BusModel:      seatmap.Model(strings.ToLower(strings.TrimSpace(busModel))),
		DepartureDate: strings.TrimSpace(departureDate),
	}
}

// Complete reports whether every component is present.
func (k Key) Complete() bool {
	return k.TripID != "" && k.BusModel != "" && k.DepartureDate != ""
}

// Missing lists the absent components by flag name.
func (k Key) Missing() []string {
	var missing []string
	if k.TripID == "" {
		missing = append(missing, "trip")
	}
	if k.BusModel == "" {
		missing = append(missing, "bus model")
	}
	if k.DepartureDate == "" {
		missing = append(missing, "departure date")
	}
	return missing
}

// Validate checks a complete key. An incomplete key yields
// [ErrIncompleteKey].
func (k Key) Validate() error {
	if !k.Complete() {
		return ErrIncompleteKey
	}
	if err := errors.ValidateTripID(k.TripID); err != nil {
		return err
	}
	if _, err := seatmap.ParseModel(string(k.BusModel)); err != nil {
		return err
	}
	return errors.ValidateDepartureDate(k.DepartureDate)
}

// CacheKey returns the cache key of the snapshot.
func (k Key) CacheKey() string {
	return cache.Key(k.TripID, string(k.BusModel), k.DepartureDate)
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s@%s", k.TripID, k.BusModel, k.DepartureDate)
}
