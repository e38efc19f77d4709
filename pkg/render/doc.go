// Package render turns seat layouts into output for people and programs.
//
// # Sinks
//
//   - [RenderText]: a terminal grid styled with lipgloss, one cell per grid
//     column, used by the CLI and the interactive picker
//   - [Describe] and [RenderJSON]: a JSON descriptor of every slot with its
//     presentation class, used by the HTTP API and `layout --format json`
//
// Both sinks are pure: they read a [seatmap.Layout] and a selection and
// never change either. The class of every slot comes from
// [seatmap.ClassOf], so a booked seat renders as booked even when a stale
// selection still lists it.
//
// # Text Cells
//
// Every grid column is four characters wide. Seat cells show the number
// and a marker:
//
//	 12    free
//	 12*   selected
//	 12x   booked
//	  -    disabled filler
//	DOOR   door (spans two cells)
//	 WC    lavatory
package render
