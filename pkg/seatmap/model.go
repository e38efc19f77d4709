package seatmap

import (
	"strings"

	"github.com/busline/seatplan/pkg/errors"
)

// Model names a bus seating template.
type Model string

const (
	ModelVIP Model = "vip"
	Model580 Model = "580"
)

// Models lists the supported bus models in display order.
var Models = []Model{ModelVIP, Model580}

// ModelNames returns the supported model names as "vip, 580".
func ModelNames() string {
	names := make([]string, len(Models))
	for i, m := range Models {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// String returns the wire name of the model.
func (m Model) String() string { return string(m) }

// ParseModel converts a case-insensitive model name such as "VIP" or "580".
func ParseModel(s string) (Model, error) {
	switch Model(strings.ToLower(strings.TrimSpace(s))) {
	case ModelVIP:
		return ModelVIP, nil
	case Model580:
		return Model580, nil
	case "":
		return "", errors.New(errors.ErrCodeInvalidBusModel, "bus model cannot be empty")
	default:
		return "", errors.New(errors.ErrCodeInvalidBusModel, "unsupported bus model %q (want one of: %s)", s, ModelNames())
	}
}

// Builder turns a seat snapshot into a layout for one model.
type Builder func(seats []Seat, capacity Capacity) Layout

var builders = map[Model]Builder{
	ModelVIP: BuildVIP,
	Model580: Build580,
}

// Build dispatches to the builder for model.
func Build(model Model, seats []Seat, capacity Capacity) (Layout, error) {
	b, ok := builders[model]
	if !ok {
		return Layout{}, errors.New(errors.ErrCodeInvalidBusModel, "no layout for bus model %q", model)
	}
	return b(seats, capacity), nil
}
