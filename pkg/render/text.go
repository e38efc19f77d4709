package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/busline/seatplan/pkg/seatmap"
)

const cellWidth = 4

// aisle separates the left and right blocks of two-column models.
const aisle = "   "

// TextOptions controls [RenderText].
type TextOptions struct {
	Color  bool // style cells with lipgloss colors
	Cursor int  // seat number to highlight; 0 for none
	Legend bool // append a legend line
}

var (
	styleFree     = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("36"))
	styleBooked   = lipgloss.NewStyle().Foreground(lipgloss.Color("167")).Strikethrough(true)
	styleDisabled = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleFixture  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleHeader   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
)

// RenderText draws the layout as a text grid. sel may be nil.
func RenderText(l seatmap.Layout, sel seatmap.Selection, opts TextOptions) string {
	blocks := make([]string, 0, len(l.Columns)*2)
	for i, c := range l.Columns {
		if i > 0 {
			blocks = append(blocks, aisle)
		}
		blocks = append(blocks, renderColumn(c, sel, opts))
	}

	var b strings.Builder
	b.WriteString(header(l, sel, opts))
	b.WriteByte('\n')
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	if opts.Legend {
		b.WriteString("\n\n")
		b.WriteString(legend(opts))
	}
	return b.String()
}

func header(l seatmap.Layout, sel seatmap.Selection, opts TextOptions) string {
	free, booked, selected := 0, 0, 0
	for _, s := range l.Seats() {
		switch seatmap.ClassOf(seatmap.SeatSlot(s), sel) {
		case seatmap.ClassFree:
			free++
		case seatmap.ClassSelected:
			selected++
		case seatmap.ClassBooked:
			booked++
		}
	}
	h := fmt.Sprintf("%s  free %d  booked %d  selected %d",
		strings.ToUpper(l.Model.String()), free+selected, booked, selected)
	if opts.Color {
		return styleHeader.Render(h)
	}
	return h
}

func renderColumn(c seatmap.Column, sel seatmap.Selection, opts TextOptions) string {
	width := 0
	for _, r := range c.Rows {
		width = max(width, r.Width())
	}

	lines := make([]string, len(c.Rows))
	for i, r := range c.Rows {
		var line strings.Builder
		for _, s := range r {
			line.WriteString(renderCell(s, sel, opts))
		}
		// Pad short rows so blocks joined side by side stay aligned.
		if pad := (width - r.Width()) * cellWidth; pad > 0 {
			line.WriteString(strings.Repeat(" ", pad))
		}
		lines[i] = line.String()
	}
	return strings.Join(lines, "\n")
}

func renderCell(s seatmap.Slot, sel seatmap.Selection, opts TextOptions) string {
	class := seatmap.ClassOf(s, sel)
	text := cellText(s, class)

	if !opts.Color {
		return text
	}
	style := classStyle(class)
	if s.IsSeat() && opts.Cursor != 0 && s.Seat.Number == opts.Cursor {
		style = style.Reverse(true)
	}
	return style.Render(text)
}

func cellText(s seatmap.Slot, class seatmap.Class) string {
	switch class {
	case seatmap.ClassFree:
		return fmt.Sprintf("%3d ", s.Seat.Number)
	case seatmap.ClassSelected:
		return fmt.Sprintf("%3d*", s.Seat.Number)
	case seatmap.ClassBooked:
		return fmt.Sprintf("%3dx", s.Seat.Number)
	case seatmap.ClassFixture:
		return center(fixtureLabel(s.Fixture), s.Width()*cellWidth)
	case seatmap.ClassGap:
		return strings.Repeat(" ", cellWidth)
	default:
		return "  - "
	}
}

func fixtureLabel(f seatmap.Fixture) string {
	switch f {
	case seatmap.FixtureDoor:
		return "DOOR"
	case seatmap.FixtureLavatory:
		return "WC"
	default:
		return strings.ToUpper(string(f))
	}
}

func center(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

func classStyle(c seatmap.Class) lipgloss.Style {
	switch c {
	case seatmap.ClassFree:
		return styleFree
	case seatmap.ClassSelected:
		return styleSelected
	case seatmap.ClassBooked:
		return styleBooked
	case seatmap.ClassFixture:
		return styleFixture
	default:
		return styleDisabled
	}
}

func legend(opts TextOptions) string {
	items := []struct {
		class seatmap.Class
		cell  string
		label string
	}{
		{seatmap.ClassFree, " 1 ", "free"},
		{seatmap.ClassSelected, " 1*", "selected"},
		{seatmap.ClassBooked, " 1x", "booked"},
		{seatmap.ClassDisabled, " - ", "unavailable"},
	}
	parts := make([]string, len(items))
	for i, it := range items {
		cell := it.cell
		if opts.Color {
			cell = classStyle(it.class).Render(cell)
		}
		parts[i] = cell + " " + it.label
	}
	return strings.Join(parts, "   ")
}
