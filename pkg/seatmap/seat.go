package seatmap

import "sort"

// Status is the booking state of a seat as reported by the backend.
type Status string

const (
	StatusFree   Status = "free"
	StatusBooked Status = "booked"
)

// IsFree reports whether a passenger may select the seat.
func (s Status) IsFree() bool { return s == StatusFree }

// Seat is one backend seat record. Numbers are unique per trip, date and
// model and start at 1.
type Seat struct {
	Number int    `json:"seat_number"`
	Status Status `json:"status"`
}

// Capacity is the backend's split between the model's intrinsic seats and
// overflow seats numbered after them.
type Capacity struct {
	Base       int `json:"base_capacity"`
	Additional int `json:"additional_capacity"`
	Total      int `json:"total_capacity"`
}

// Default capacity used when the backend omits the split.
const (
	DefaultBaseCapacity       = 35
	DefaultAdditionalCapacity = 0
)

// DefaultCapacity returns the 35+0 split assumed for responses without
// capacity fields.
func DefaultCapacity() Capacity {
	return Capacity{
		Base:       DefaultBaseCapacity,
		Additional: DefaultAdditionalCapacity,
		Total:      DefaultBaseCapacity + DefaultAdditionalCapacity,
	}
}

// index maps seat numbers to seats. Later duplicates win.
func index(seats []Seat) map[int]Seat {
	m := make(map[int]Seat, len(seats))
	for _, s := range seats {
		m[s.Number] = s
	}
	return m
}

// sortedNumbers returns the distinct seat numbers in ascending order.
func sortedNumbers(seats []Seat) []int {
	seen := make(map[int]struct{}, len(seats))
	nums := make([]int, 0, len(seats))
	for _, s := range seats {
		if _, ok := seen[s.Number]; ok {
			continue
		}
		seen[s.Number] = struct{}{}
		nums = append(nums, s.Number)
	}
	sort.Ints(nums)
	return nums
}
