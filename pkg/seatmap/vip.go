package seatmap

// VIP base template: 35 seats, front to back. Right-hand pairs are stored
// higher number first, the order they are drawn in.
var (
	vipLeft = []int{3, 6, 9, 12, 15, 16, 17, 20, 23, 26, 29, 32, 35}

	vipRight = [][2]int{
		{2, 1}, {5, 4}, {8, 7}, {11, 10}, {14, 13},
		{19, 18}, {22, 21}, {25, 24}, {28, 27}, {31, 30}, {34, 33},
	}
)

// vipDoorBefore is the index of the right-hand pair the door row precedes.
const vipDoorBefore = 5

type vipTurn int

const (
	turnRight vipTurn = iota
	turnLeft
)

// BuildVIP lays out a VIP coach: a left column of single seats and a right
// column of seat pairs with the door after the fifth pair.
//
// Overflow seats, numbered from capacity.Base+1, alternate starting on the
// right: two seats as a reversed pair on the right, then one on the left.
// When the right side is due but only one seat remains, it goes left.
//
// Template numbers missing from seats are left out of their row; the row
// itself is kept so the geometry does not shift.
func BuildVIP(seats []Seat, capacity Capacity) Layout {
	byNum := index(seats)

	left := make([]Row, 0, len(vipLeft)+capacity.Additional)
	for _, n := range vipLeft {
		left = append(left, seatRow(byNum, n))
	}

	right := make([]Row, 0, len(vipRight)+1+capacity.Additional/2)
	for i, pair := range vipRight {
		if i == vipDoorBefore {
			right = append(right, Row{FixtureSlot(FixtureDoor, 2)})
		}
		right = append(right, seatRow(byNum, pair[0], pair[1]))
	}

	extra := make([]int, 0, max(capacity.Additional, 0))
	for i := 1; i <= capacity.Additional; i++ {
		extra = append(extra, capacity.Base+i)
	}

	turn := turnRight
	for len(extra) > 0 {
		switch {
		case turn == turnRight && len(extra) >= 2:
			a, b := extra[0], extra[1]
			right = append(right, seatRow(byNum, b, a))
			extra = extra[2:]
			turn = turnLeft
		case turn == turnLeft:
			left = append(left, seatRow(byNum, extra[0]))
			extra = extra[1:]
			turn = turnRight
		default:
			for _, n := range extra {
				left = append(left, seatRow(byNum, n))
			}
			extra = nil
		}
	}

	return Layout{
		Model: ModelVIP,
		Columns: []Column{
			{Name: ColumnLeft, Rows: left},
			{Name: ColumnRight, Rows: right},
		},
	}
}

// seatRow builds a row from the given seat numbers, skipping unknown ones.
func seatRow(byNum map[int]Seat, nums ...int) Row {
	row := make(Row, 0, len(nums))
	for _, n := range nums {
		if s, ok := byNum[n]; ok {
			row = append(row, SeatSlot(s))
		}
	}
	return row
}
