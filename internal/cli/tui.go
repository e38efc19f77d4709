package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/busline/seatplan/pkg/integrations/seatdata"
	"github.com/busline/seatplan/pkg/planner"
	"github.com/busline/seatplan/pkg/render"
	"github.com/busline/seatplan/pkg/seatmap"
	"github.com/busline/seatplan/pkg/selection"
)

var (
	pickHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	pickStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	pickErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Seat Grid - cursor navigation over a layout
// =============================================================================

// seatPos locates a placed seat on screen.
type seatPos struct {
	number int
	col    int
	row    int
	x      int // offset in cells from the start of the row
}

// seatGrid lists placed seats in column, row, slot order.
type seatGrid []seatPos

func newSeatGrid(l seatmap.Layout) seatGrid {
	var g seatGrid
	for ci, c := range l.Columns {
		for ri, r := range c.Rows {
			x := 0
			for _, s := range r {
				if s.IsSeat() {
					g = append(g, seatPos{number: s.Seat.Number, col: ci, row: ri, x: x})
				}
				x += s.Width()
			}
		}
	}
	return g
}

func (g seatGrid) index(n int) int {
	for i, p := range g {
		if p.number == n {
			return i
		}
	}
	return -1
}

// step moves along the grid order by delta, clamped to the ends.
func (g seatGrid) step(n, delta int) int {
	if len(g) == 0 {
		return 0
	}
	i := g.index(n)
	if i < 0 {
		return g[0].number
	}
	i = min(max(i+delta, 0), len(g)-1)
	return g[i].number
}

// vertical moves to the nearest seat in the next row up (dir -1) or down
// (dir 1) within the same column, skipping rows without seats.
func (g seatGrid) vertical(n, dir int) int {
	i := g.index(n)
	if i < 0 {
		return g.step(n, 0)
	}
	cur := g[i]

	best, bestRow, bestDist := -1, -1, 0
	for j, p := range g {
		if p.col != cur.col || (p.row-cur.row)*dir <= 0 {
			continue
		}
		dist := abs(p.x - cur.x)
		rowDist := abs(p.row - cur.row)
		if best < 0 || rowDist < abs(bestRow-cur.row) || (rowDist == abs(bestRow-cur.row) && dist < bestDist) {
			best, bestRow, bestDist = j, p.row, dist
		}
	}
	if best < 0 {
		return n
	}
	return g[best].number
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// =============================================================================
// PickModel - Interactive seat selection
// =============================================================================

// loadedMsg carries the result of a seat load.
type loadedMsg struct {
	state  planner.State
	err    error
	reload bool
}

// PickModel is the bubbletea model for picking seats on a trip.
type PickModel struct {
	ctx    context.Context
	loader *planner.Loader
	key    seatdata.Key

	State    planner.State
	Selected selection.Set
	Cursor   int
	Saved    bool // true when the user confirmed with enter

	grid    seatGrid
	loading bool
	status  string
	err     error
}

// NewPickModel creates a picker for key starting from sel.
func NewPickModel(ctx context.Context, loader *planner.Loader, key seatdata.Key, sel selection.Set) PickModel {
	return PickModel{
		ctx:      ctx,
		loader:   loader,
		key:      key,
		Selected: sel,
		loading:  true,
		status:   "Loading seats...",
	}
}

func (m PickModel) Init() tea.Cmd {
	return m.load(false)
}

func (m PickModel) load(reload bool) tea.Cmd {
	ctx, loader, key := m.ctx, m.loader, m.key
	return func() tea.Msg {
		var (
			state planner.State
			err   error
		)
		if reload {
			state, err = loader.Reload(ctx, key)
		} else {
			state, err = loader.Load(ctx, key)
		}
		return loadedMsg{state: state, err: err, reload: reload}
	}
}

func (m PickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		return m.loaded(msg), nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if !m.loading {
				m.loading = true
				m.status = "Reloading seats..."
				return m, m.load(true)
			}
		case "left", "h":
			m.Cursor = m.grid.step(m.Cursor, -1)
		case "right", "l":
			m.Cursor = m.grid.step(m.Cursor, 1)
		case "up", "k":
			m.Cursor = m.grid.vertical(m.Cursor, -1)
		case "down", "j":
			m.Cursor = m.grid.vertical(m.Cursor, 1)
		case " ", "x":
			m = m.toggle()
		case "enter":
			if m.State.Available {
				m.Saved = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m PickModel) loaded(msg loadedMsg) PickModel {
	m.loading = false
	if msg.err != nil {
		// A failed reload keeps the seats already on screen.
		m.err = msg.err
		m.status = ""
		return m
	}
	m.err = nil
	m.State = msg.state
	if !msg.state.Available {
		m.status = msg.state.Reason
		return m
	}

	m.grid = newSeatGrid(msg.state.Layout)
	if m.grid.index(m.Cursor) < 0 {
		m.Cursor = m.grid.step(0, 0)
	}

	before := m.Selected
	m.Selected = selection.Reconcile(before, msg.state.Placed())
	if dropped := selection.Dropped(before, m.Selected); len(dropped) > 0 {
		m.status = "No longer available: " + joinInts(dropped)
	} else if msg.reload {
		m.status = "Seats refreshed"
	} else {
		m.status = ""
	}
	return m
}

func (m PickModel) toggle() PickModel {
	seat, ok := m.State.Seat(m.Cursor)
	if !ok {
		return m
	}
	m.Selected = selection.Toggle(m.Selected, seat.Number, seat.Status)
	if !seat.Status.IsFree() {
		m.status = fmt.Sprintf("Seat %d is booked", seat.Number)
	} else {
		m.status = ""
	}
	return m
}

func (m PickModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Pick Seats"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(m.key.String()))
	b.WriteString("\n")
	b.WriteString(pickHelpStyle.Render("←/→ prev/next  ↑/↓ row  space toggle  r reload  ⏎ save  q quit"))
	b.WriteString("\n\n")

	if m.State.Available {
		b.WriteString(render.RenderText(m.State.Layout, m.Selected, render.TextOptions{
			Color:  true,
			Cursor: m.Cursor,
			Legend: true,
		}))
		b.WriteString("\n\n")
		b.WriteString(StyleDim.Render("Selected: "))
		b.WriteString(StyleValue.Render(joinInts(m.Selected.Numbers())))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(pickErrorStyle.Render(iconError + " " + m.err.Error()))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(pickStatusStyle.Render(m.status))
		b.WriteString("\n")
	}
	return b.String()
}
