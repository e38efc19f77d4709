// Package seatmap reconstructs the physical seat layout of a bus from the flat
// seat list a booking backend returns.
//
// # Overview
//
// The backend knows seats only as numbers with a status. The passenger-facing
// grid, with its aisle, door and lavatory, is derived here from a fixed template
// per bus model:
//
//   - [ModelVIP]: a single-seat left column and a two-seat right column with the
//     door between the 5th and 6th pair. Overflow seats alternate right pair,
//     left single.
//   - [Model580]: a 44-seat template of [seat, seat, aisle, seat, seat] rows with
//     lavatory and door rows in the middle, a fixed five-seat back row closing
//     the 13th row, and overflow rows of four seats inserted before the back row.
//
// # Usage
//
//	l, err := seatmap.Build(seatmap.ModelVIP, seats, seatmap.Capacity{Base: 35, Additional: 3, Total: 38})
//	if err != nil {
//	    return err
//	}
//	for _, col := range l.Columns {
//	    for _, row := range col.Rows {
//	        // render row
//	    }
//	}
//
// # Values, not state
//
// A [Layout] is rebuilt from scratch whenever the seat data changes and is
// never patched in place. Builders are pure: identical input yields a
// structurally identical Layout.
//
// # Degraded input
//
// Builders never fail on inconsistent data. Template positions without a
// matching seat become disabled fillers (580) or are left out (VIP), and seat
// numbers that no template position claims are dropped.
package seatmap
