package seatmap

// cell is one position of the 580 template.
type cell byte

const (
	cellSeat     cell = 's' // filled from the seat queue
	cellGap      cell = '_' // aisle
	cellLavatory cell = 'L' // lavatory over two seat columns
	cellDoor     cell = 'D' // door over two seat columns
	cellBlank    cell = 'x' // disabled placeholder
)

// template580 is the body of a 580 coach, front to back. With the back row
// it makes the coach's 13 rows and holds 44 seats. Rows 5 and 6 carry the
// lavatory and the door over the two left columns and seat three on the
// right with no aisle. Row 7 has two dead positions behind them.
var template580 = []string{
	"ss_ss",
	"ss_ss",
	"ss_ss",
	"ss_ss",
	"ss_ss",
	"Lsss",
	"Dsss",
	"xx_ss",
	"ss_ss",
	"ss_ss",
	"ss_ss",
	"ss_ss",
}

const (
	backRowSeats  = 5 // seats across the back bench
	extraRowSeats = 4 // seats per overflow row
)

// Build580 lays out a 580 coach.
//
// Seat numbers are taken in ascending order. The highest five form the back
// row, which is always last. The rest fill the template's seat positions in
// order; positions left over become disabled fillers. Seats that do not fit
// the template are emitted as extra [seat, seat, aisle, seat, seat] rows
// ahead of the back row, padding a short last row with fillers.
//
// The capacity split does not affect placement: the seat list alone decides.
func Build580(seats []Seat, capacity Capacity) Layout {
	byNum := index(seats)
	nums := sortedNumbers(seats)

	split := max(len(nums)-backRowSeats, 0)
	queue, back := nums[:split], nums[split:]

	next := func() Slot {
		if len(queue) == 0 {
			return FillerSlot()
		}
		n := queue[0]
		queue = queue[1:]
		return SeatSlot(byNum[n])
	}

	rows := make([]Row, 0, len(template580)+len(queue)/extraRowSeats+2)
	for _, pattern := range template580 {
		row := make(Row, 0, len(pattern))
		for _, c := range []byte(pattern) {
			switch cell(c) {
			case cellSeat:
				row = append(row, next())
			case cellGap:
				row = append(row, GapSlot())
			case cellLavatory:
				row = append(row, FixtureSlot(FixtureLavatory, 2))
			case cellDoor:
				row = append(row, FixtureSlot(FixtureDoor, 2))
			case cellBlank:
				row = append(row, FillerSlot())
			}
		}
		rows = append(rows, row)
	}

	for len(queue) > 0 {
		rows = append(rows, Row{next(), next(), GapSlot(), next(), next()})
	}

	if len(back) > 0 {
		row := make(Row, 0, len(back))
		for _, n := range back {
			row = append(row, SeatSlot(byNum[n]))
		}
		rows = append(rows, row)
	}

	return Layout{
		Model:   Model580,
		Columns: []Column{{Name: ColumnMain, Rows: rows}},
	}
}
