package seatmap

// Kind discriminates what occupies a [Slot].
type Kind string

const (
	KindSeat    Kind = "seat"    // a selectable or booked seat
	KindFixture Kind = "fixture" // door or lavatory
	KindGap     Kind = "gap"     // aisle, purely spatial
	KindFiller  Kind = "filler"  // disabled placeholder seat
)

// Fixture names a fixed, non-seat element of the bus interior.
type Fixture string

const (
	FixtureDoor     Fixture = "door"
	FixtureLavatory Fixture = "lavatory"
)

// Slot is one position in the physical grid. Exactly one of Seat or Fixture
// is meaningful, selected by Kind.
type Slot struct {
	Kind    Kind    `json:"kind"`
	Seat    Seat    `json:"seat,omitzero"`
	Fixture Fixture `json:"fixture,omitempty"`
	Span    int     `json:"span,omitempty"` // grid columns covered; 0 means 1
}

// SeatSlot returns a slot holding s.
func SeatSlot(s Seat) Slot { return Slot{Kind: KindSeat, Seat: s} }

// FixtureSlot returns a fixture slot covering span grid columns.
func FixtureSlot(f Fixture, span int) Slot { return Slot{Kind: KindFixture, Fixture: f, Span: span} }

// GapSlot returns an aisle slot.
func GapSlot() Slot { return Slot{Kind: KindGap} }

// FillerSlot returns a disabled seat placeholder.
func FillerSlot() Slot { return Slot{Kind: KindFiller} }

// Width returns the number of grid columns the slot covers.
func (s Slot) Width() int {
	if s.Span < 1 {
		return 1
	}
	return s.Span
}

// IsSeat reports whether the slot holds a seat.
func (s Slot) IsSeat() bool { return s.Kind == KindSeat }

// Row is an ordered run of slots.
type Row []Slot

// Width returns the number of grid columns the row covers.
func (r Row) Width() int {
	w := 0
	for _, s := range r {
		w += s.Width()
	}
	return w
}

// Column is a vertically stacked sequence of rows. Models with independent
// left and right seat blocks use one column per block.
type Column struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

// Column names used by the builders.
const (
	ColumnLeft  = "left"
	ColumnRight = "right"
	ColumnMain  = "main"
)

// Layout is the physical arrangement of a bus interior. It is a value: the
// builders return a fresh Layout and nothing mutates one afterwards.
type Layout struct {
	Model   Model    `json:"model"`
	Columns []Column `json:"columns"`
}

// Column returns the column with the given name.
func (l Layout) Column(name string) (Column, bool) {
	for _, c := range l.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Seats returns every placed seat in column, row, slot order.
func (l Layout) Seats() []Seat {
	var out []Seat
	for _, c := range l.Columns {
		for _, r := range c.Rows {
			for _, s := range r {
				if s.IsSeat() {
					out = append(out, s.Seat)
				}
			}
		}
	}
	return out
}

// Seat looks up a placed seat by number.
func (l Layout) Seat(n int) (Seat, bool) {
	for _, s := range l.Seats() {
		if s.Number == n {
			return s, true
		}
	}
	return Seat{}, false
}

// Positions returns the number of seat-shaped positions, placed seats and
// disabled fillers alike.
func (l Layout) Positions() int {
	n := 0
	for _, c := range l.Columns {
		for _, r := range c.Rows {
			for _, s := range r {
				if s.Kind == KindSeat || s.Kind == KindFiller {
					n++
				}
			}
		}
	}
	return n
}

// Class is the presentation state of a slot for a given selection.
type Class string

const (
	ClassFree     Class = "free"
	ClassSelected Class = "selected"
	ClassBooked   Class = "booked"
	ClassDisabled Class = "disabled"
	ClassFixture  Class = "fixture"
	ClassGap      Class = "gap"
)

// Selection is the read side of a caller-owned seat selection.
type Selection interface {
	Has(n int) bool
}

// ClassOf classifies a slot. A booked seat stays booked even if a stale
// selection still lists it. sel may be nil.
func ClassOf(s Slot, sel Selection) Class {
	switch s.Kind {
	case KindSeat:
		switch {
		case !s.Seat.Status.IsFree():
			return ClassBooked
		case sel != nil && sel.Has(s.Seat.Number):
			return ClassSelected
		default:
			return ClassFree
		}
	case KindFixture:
		return ClassFixture
	case KindGap:
		return ClassGap
	default:
		return ClassDisabled
	}
}
