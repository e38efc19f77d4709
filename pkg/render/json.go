package render

import (
	"encoding/json"

	"github.com/busline/seatplan/pkg/seatmap"
)

// Descriptor is the JSON form of a layout with presentation classes.
type Descriptor struct {
	Model    seatmap.Model      `json:"model"`
	Columns  []ColumnDescriptor `json:"columns"`
	Selected []int              `json:"selected"`
	Summary  Summary            `json:"summary"`
}

// ColumnDescriptor is one column of a [Descriptor].
type ColumnDescriptor struct {
	Name string             `json:"name"`
	Rows [][]SlotDescriptor `json:"rows"`
}

// SlotDescriptor is one slot with its class.
type SlotDescriptor struct {
	Kind       seatmap.Kind    `json:"kind"`
	Class      seatmap.Class   `json:"class"`
	SeatNumber int             `json:"seat_number,omitempty"`
	Status     seatmap.Status  `json:"status,omitempty"`
	Fixture    seatmap.Fixture `json:"fixture,omitempty"`
	Span       int             `json:"span,omitempty"`
}

// Summary counts placed seats by class.
type Summary struct {
	Positions int `json:"positions"`
	Seats     int `json:"seats"`
	Free      int `json:"free"`
	Booked    int `json:"booked"`
	Selected  int `json:"selected"`
}

// Describe builds the descriptor of l under sel. sel may be nil. Selected
// lists only seats that are placed and free, in layout order.
func Describe(l seatmap.Layout, sel seatmap.Selection) Descriptor {
	d := Descriptor{
		Model:    l.Model,
		Columns:  make([]ColumnDescriptor, len(l.Columns)),
		Selected: []int{},
		Summary:  Summary{Positions: l.Positions()},
	}

	for i, c := range l.Columns {
		cd := ColumnDescriptor{Name: c.Name, Rows: make([][]SlotDescriptor, len(c.Rows))}
		for j, r := range c.Rows {
			row := make([]SlotDescriptor, len(r))
			for k, s := range r {
				class := seatmap.ClassOf(s, sel)
				row[k] = SlotDescriptor{Kind: s.Kind, Class: class, Fixture: s.Fixture, Span: s.Span}
				if !s.IsSeat() {
					continue
				}
				row[k].SeatNumber = s.Seat.Number
				row[k].Status = s.Seat.Status

				d.Summary.Seats++
				switch class {
				case seatmap.ClassFree:
					d.Summary.Free++
				case seatmap.ClassSelected:
					d.Summary.Free++
					d.Summary.Selected++
					d.Selected = append(d.Selected, s.Seat.Number)
				case seatmap.ClassBooked:
					d.Summary.Booked++
				}
			}
			cd.Rows[j] = row
		}
		d.Columns[i] = cd
	}
	return d
}

// RenderJSON returns the indented JSON descriptor of l under sel.
func RenderJSON(l seatmap.Layout, sel seatmap.Selection) ([]byte, error) {
	return json.MarshalIndent(Describe(l, sel), "", "  ")
}
