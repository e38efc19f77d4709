package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/busline/seatplan/pkg/errors"
	"github.com/busline/seatplan/pkg/integrations/seatdata"
	"github.com/busline/seatplan/pkg/planner"
	"github.com/busline/seatplan/pkg/session"
	"github.com/busline/seatplan/pkg/selection"
)

// draftCommand creates the draft command with subcommands for booking drafts.
func (c *CLI) draftCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Manage booking drafts",
		Long:  `Show, change, list and clear the seats picked for trips but not yet booked.`,
	}

	cmd.AddCommand(c.draftShowCommand())
	cmd.AddCommand(c.draftToggleCommand())
	cmd.AddCommand(c.draftListCommand())
	cmd.AddCommand(c.draftClearCommand())

	return cmd
}

func (c *CLI) draftShowCommand() *cobra.Command {
	var kf keyFlags
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the draft for a trip",
		RunE: func(cmd *cobra.Command, args []string) error {
			key := kf.key()
			if err := requireKey(key); err != nil {
				return err
			}
			store, err := c.newDraftStore()
			if err != nil {
				return err
			}
			d, err := store.Get(cmd.Context(), key)
			if err != nil {
				return err
			}
			if d == nil {
				printInfo("No draft for %s", key)
				return nil
			}
			printDraft(d)
			return nil
		},
	}
	kf.register(cmd)
	return cmd
}

func (c *CLI) draftToggleCommand() *cobra.Command {
	var (
		kf    keyFlags
		seats []int
	)
	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Toggle seats in the draft for a trip",
		Long: `Toggle seats in a trip's draft against live availability.

Free seats are added or removed. Booked seats are left unchanged. Seats
that became unavailable since the draft was saved are dropped first.`,
		Example: `  seatplan draft toggle -t 8841 -m vip -d 2025-03-14 --seat 12 --seat 13`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDraftToggle(cmd.Context(), kf.key(), seats)
		},
	}
	kf.register(cmd)
	cmd.Flags().IntSliceVar(&seats, "seat", nil, "seat number to toggle (repeatable)")
	_ = cmd.MarkFlagRequired("seat")
	return cmd
}

func (c *CLI) runDraftToggle(ctx context.Context, key seatdata.Key, seats []int) error {
	if err := requireKey(key); err != nil {
		return err
	}
	for _, n := range seats {
		if err := errors.ValidateSeatNumber(n); err != nil {
			return err
		}
	}

	client, cc, err := c.newSeatClient(ctx)
	if err != nil {
		return err
	}
	defer cc.Close()

	state, err := planner.NewLoader(client, nil, loggerFromContext(ctx)).Load(ctx, key)
	if err != nil {
		return err
	}

	store, err := c.newDraftStore()
	if err != nil {
		return err
	}
	d, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if d == nil {
		d = session.New(key, session.DefaultTTL)
	}

	before := d.Selection()
	sel := selection.Reconcile(before, state.Placed())
	if dropped := selection.Dropped(before, sel); len(dropped) > 0 {
		printWarning("Dropped unavailable seats: %s", joinInts(dropped))
	}

	for _, n := range seats {
		seat, ok := state.Seat(n)
		if !ok {
			return errors.New(errors.ErrCodeInvalidSeat, "seat %d is not on trip %s", n, key.TripID)
		}
		next := selection.Toggle(sel, n, seat.Status)
		if next.Equal(sel) {
			printWarning("Seat %d is booked", n)
		}
		sel = next
	}

	d.SetSelection(sel)
	if err := store.Set(ctx, d); err != nil {
		return err
	}
	printSuccess("Draft updated")
	printKeyValue("Seats", joinInts(sel.Numbers()))
	return nil
}

func (c *CLI) draftListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List live drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newDraftStore()
			if err != nil {
				return err
			}
			drafts, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(drafts) == 0 {
				printInfo("No drafts")
				return nil
			}
			fmt.Fprintln(out, draftTable(drafts, time.Now()))
			return nil
		},
	}
}

func (c *CLI) draftClearCommand() *cobra.Command {
	var (
		kf      keyFlags
		expired bool
	)
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the draft for a trip",
		Example: `  seatplan draft clear -t 8841 -m vip -d 2025-03-14
  seatplan draft clear --expired`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newDraftStore()
			if err != nil {
				return err
			}
			if expired {
				n, err := store.Cleanup(cmd.Context())
				if err != nil {
					return err
				}
				printSuccess("Removed %d expired drafts", n)
				return nil
			}

			key := kf.key()
			if err := requireKey(key); err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), key); err != nil {
				return err
			}
			printSuccess("Draft cleared")
			return nil
		},
	}
	kf.register(cmd)
	cmd.Flags().BoolVar(&expired, "expired", false, "remove all expired drafts instead")
	return cmd
}

// requireKey rejects incomplete or malformed keys.
func requireKey(key seatdata.Key) error {
	if !key.Complete() {
		return errors.Wrap(errors.ErrCodeIncompleteKey, seatdata.ErrIncompleteKey, "missing %s", strings.Join(key.Missing(), ", "))
	}
	return key.Validate()
}

func printDraft(d *session.Draft) {
	printKeyValue("Trip", d.Key.TripID)
	printKeyValue("Bus model", d.Key.BusModel.String())
	printKeyValue("Date", d.Key.DepartureDate)
	printKeyValue("Seats", joinInts(d.Seats))
	printKeyValue("Expires", d.ExpiresAt.Local().Format("15:04"))
	printKeyValue("Draft ID", d.ID)
}

// draftTable renders drafts as a bordered table.
func draftTable(drafts []*session.Draft, now time.Time) string {
	rows := make([][]string, 0, len(drafts))
	for _, d := range drafts {
		rows = append(rows, []string{
			d.Key.TripID,
			d.Key.BusModel.String(),
			d.Key.DepartureDate,
			joinInts(d.Seats),
			formatRelativeTime(d.UpdatedAt, now),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Trip", "Model", "Date", "Seats", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 3 {
				return lipgloss.NewStyle().Foreground(colorGreen).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render()
}

// formatRelativeTime formats t relative to now.
func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}
