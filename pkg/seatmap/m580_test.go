package seatmap

import (
	"reflect"
	"strconv"
	"strings"
	"testing"
)

// shape renders a row as a compact string: seat numbers, "_" for the aisle,
// "x" for fillers, "L"/"D" for fixtures.
func shape(r Row) string {
	parts := make([]string, 0, len(r))
	for _, s := range r {
		switch s.Kind {
		case KindSeat:
			parts = append(parts, strconv.Itoa(s.Seat.Number))
		case KindGap:
			parts = append(parts, "_")
		case KindFiller:
			parts = append(parts, "x")
		case KindFixture:
			parts = append(parts, strings.ToUpper(string(s.Fixture[:1])))
		}
	}
	return strings.Join(parts, " ")
}

func mainRows(t *testing.T, l Layout) []string {
	t.Helper()
	c := mustColumn(t, l, ColumnMain)
	out := make([]string, len(c.Rows))
	for i, r := range c.Rows {
		out[i] = shape(r)
	}
	return out
}

func TestBuild580_TemplateCapacity(t *testing.T) {
	// 44 fillable positions plus the two dead ones in row 7.
	l := Build580(nil, Capacity{})
	if got := l.Positions(); got != 46 {
		t.Errorf("empty template has %d seat positions, want 46", got)
	}

	full := Build580(freeSeats(1, 49), Capacity{})
	if got := full.Positions() - len(full.Seats()); got != 2 {
		t.Errorf("full template has %d fillers, want 2", got)
	}
	if got := len(l.Seats()); got != 0 {
		t.Errorf("empty template placed %d seats, want 0", got)
	}
}

func TestBuild580_FortyNineSeats(t *testing.T) {
	l := Build580(freeSeats(1, 49), Capacity{Base: 49, Total: 49})
	rows := mainRows(t, l)

	want := []string{
		"1 2 _ 3 4",
		"5 6 _ 7 8",
		"9 10 _ 11 12",
		"13 14 _ 15 16",
		"17 18 _ 19 20",
		"L 21 22 23",
		"D 24 25 26",
		"x x _ 27 28",
		"29 30 _ 31 32",
		"33 34 _ 35 36",
		"37 38 _ 39 40",
		"41 42 _ 43 44",
		"45 46 47 48 49",
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows:\n%s\nwant:\n%s", strings.Join(rows, "\n"), strings.Join(want, "\n"))
	}
}

func TestBuild580_FixtureSpans(t *testing.T) {
	c := mustColumn(t, Build580(freeSeats(1, 49), Capacity{}), ColumnMain)

	for _, tt := range []struct {
		row     int
		fixture Fixture
	}{
		{5, FixtureLavatory},
		{6, FixtureDoor},
	} {
		s := c.Rows[tt.row][0]
		if s.Kind != KindFixture || s.Fixture != tt.fixture {
			t.Errorf("row %d slot 0 = %+v, want %s fixture", tt.row, s, tt.fixture)
		}
		if got := c.Rows[tt.row].Width(); got != 5 {
			t.Errorf("row %d width = %d, want 5", tt.row, got)
		}
	}
}

func TestBuild580_Overflow(t *testing.T) {
	tests := []struct {
		name      string
		seats     int
		wantExtra []string
		wantBack  string
	}{
		{"template exactly full", 49, nil, "45 46 47 48 49"},
		{"one short extra row", 51, []string{"45 46 _ x x"}, "47 48 49 50 51"},
		{"one full extra row", 53, []string{"45 46 _ 47 48"}, "49 50 51 52 53"},
		{"two extra rows", 55, []string{"45 46 _ 47 48", "49 50 _ x x"}, "51 52 53 54 55"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := mainRows(t, Build580(freeSeats(1, tt.seats), Capacity{}))

			extra := rows[len(template580) : len(rows)-1]
			if len(extra) == 0 {
				extra = nil
			}
			if !reflect.DeepEqual(extra, tt.wantExtra) {
				t.Errorf("extra rows = %q, want %q", extra, tt.wantExtra)
			}
			if got := rows[len(rows)-1]; got != tt.wantBack {
				t.Errorf("back row = %q, want %q", got, tt.wantBack)
			}
			if got := rows[len(template580)-1]; got != "41 42 _ 43 44" {
				t.Errorf("last template row = %q, want full", got)
			}
		})
	}
}

func TestBuild580_FewSeats(t *testing.T) {
	tests := []struct {
		name     string
		seats    []Seat
		wantRows int
		wantBack string
	}{
		{"no seats", nil, 12, ""},
		{"three seats all in back row", freeSeats(1, 3), 13, "1 2 3"},
		{"exactly five", freeSeats(1, 5), 13, "1 2 3 4 5"},
		{"six", freeSeats(1, 6), 13, "2 3 4 5 6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := mainRows(t, Build580(tt.seats, Capacity{}))
			if len(rows) != tt.wantRows {
				t.Fatalf("got %d rows, want %d", len(rows), tt.wantRows)
			}
			if tt.wantBack != "" && rows[len(rows)-1] != tt.wantBack {
				t.Errorf("back row = %q, want %q", rows[len(rows)-1], tt.wantBack)
			}
		})
	}
}

func TestBuild580_SortsAndDeduplicates(t *testing.T) {
	seats := []Seat{
		{Number: 7, Status: StatusFree},
		{Number: 2, Status: StatusBooked},
		{Number: 9, Status: StatusFree},
		{Number: 1, Status: StatusFree},
		{Number: 7, Status: StatusBooked},
		{Number: 3, Status: StatusFree},
		{Number: 12, Status: StatusFree},
		{Number: 10, Status: StatusFree},
	}
	rows := mainRows(t, Build580(seats, Capacity{}))

	if rows[0] != "1 2 _ x x" {
		t.Errorf("row 0 = %q, want %q", rows[0], "1 2 _ x x")
	}
	if back := rows[len(rows)-1]; back != "3 7 9 10 12" {
		t.Errorf("back row = %q, want %q", back, "3 7 9 10 12")
	}

	l := Build580(seats, Capacity{})
	if s, _ := l.Seat(7); s.Status != StatusBooked {
		t.Errorf("duplicate seat 7 status = %q, want last record %q", s.Status, StatusBooked)
	}
}

func TestBuild580_Deterministic(t *testing.T) {
	seats := freeSeats(1, 54)
	seats[10].Status = StatusBooked

	a := Build580(seats, Capacity{Base: 49, Additional: 5, Total: 54})
	b := Build580(seats, Capacity{Base: 49, Additional: 5, Total: 54})
	if !reflect.DeepEqual(a, b) {
		t.Error("Build580 is not deterministic for identical input")
	}
}
