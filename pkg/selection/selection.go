// Package selection holds the seats a passenger has tentatively chosen.
//
// A [Set] is an immutable value owned by the booking flow. It changes only
// through [Toggle], which refuses seats that are not free, and [Reconcile],
// which the caller runs after a seat refresh to drop seats that were booked
// in the meantime. Neither function has side effects; callers store the
// returned Set as their new state.
//
// There is no upper bound on the number of selected seats. Limits such as
// "at most four seats per booking" belong to the caller.
package selection

import (
	"slices"

	"github.com/busline/seatplan/pkg/seatmap"
)

// Set is an immutable set of seat numbers. The zero value is empty and ready
// to use.
type Set struct {
	nums map[int]struct{}
}

// New returns a Set holding nums.
func New(nums ...int) Set {
	if len(nums) == 0 {
		return Set{}
	}
	m := make(map[int]struct{}, len(nums))
	for _, n := range nums {
		m[n] = struct{}{}
	}
	return Set{nums: m}
}

// Has reports whether n is selected.
func (s Set) Has(n int) bool {
	_, ok := s.nums[n]
	return ok
}

// Len returns the number of selected seats.
func (s Set) Len() int { return len(s.nums) }

// Numbers returns the selected seat numbers in ascending order.
func (s Set) Numbers() []int {
	out := make([]int, 0, len(s.nums))
	for n := range s.nums {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Equal reports whether both sets hold the same numbers.
func (s Set) Equal(o Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for n := range s.nums {
		if !o.Has(n) {
			return false
		}
	}
	return true
}

func (s Set) with(n int) Set {
	m := make(map[int]struct{}, len(s.nums)+1)
	for k := range s.nums {
		m[k] = struct{}{}
	}
	m[n] = struct{}{}
	return Set{nums: m}
}

func (s Set) without(n int) Set {
	m := make(map[int]struct{}, len(s.nums))
	for k := range s.nums {
		if k != n {
			m[k] = struct{}{}
		}
	}
	return Set{nums: m}
}

// Toggle adds or removes seat n. Seats that are not free leave the set
// unchanged, so clicking a booked seat does nothing.
func Toggle(s Set, n int, status seatmap.Status) Set {
	if !status.IsFree() {
		return s
	}
	if s.Has(n) {
		return s.without(n)
	}
	return s.with(n)
}

// Reconcile drops every selected number that the refreshed seat list no
// longer offers as free, including numbers missing from the list. Pass the
// seats a layout places so that seats the template left out never stay
// selected.
func Reconcile(s Set, seats []seatmap.Seat) Set {
	free := make(map[int]bool, len(seats))
	for _, seat := range seats {
		free[seat.Number] = seat.Status.IsFree()
	}
	out := s
	for n := range s.nums {
		if !free[n] {
			out = out.without(n)
		}
	}
	return out
}

// Dropped returns the numbers present in before but not in after, ascending.
func Dropped(before, after Set) []int {
	var out []int
	for _, n := range before.Numbers() {
		if !after.Has(n) {
			out = append(out, n)
		}
	}
	return out
}
