package cli

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/busline/seatplan/pkg/errors"
	"github.com/busline/seatplan/pkg/integrations/seatdata"
	"github.com/busline/seatplan/pkg/planner"
	"github.com/busline/seatplan/pkg/session"
)

// pickCommand creates the interactive seat picker.
func (c *CLI) pickCommand() *cobra.Command {
	var kf keyFlags

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick seats interactively",
		Long: `Open the seat map for a trip and pick seats with the keyboard.

Picks start from the saved booking draft for the trip, if any. Press enter to
save the picks back to the draft.`,
		Example: `  seatplan pick -t 8841 -m vip -d 2025-03-14`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPick(cmd.Context(), kf.key())
		},
	}
	kf.register(cmd)
	return cmd
}

func (c *CLI) runPick(ctx context.Context, key seatdata.Key) error {
	if err := requireKey(key); err != nil {
		return err
	}

	client, cc, err := c.newSeatClient(ctx)
	if err != nil {
		return err
	}
	defer cc.Close()

	store, err := c.newDraftStore()
	if err != nil {
		return err
	}
	draft, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if draft == nil {
		draft = session.New(key, session.DefaultTTL)
	}

	// Loader logs would tear the alt screen.
	loader := planner.NewLoader(client, nil, log.New(io.Discard))

	model := NewPickModel(ctx, loader, key, draft.Selection())
	result, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "run picker")
	}

	final := result.(PickModel)
	if !final.Saved {
		printInfo("Picks not saved")
		return nil
	}

	draft.SetSelection(final.Selected)
	if err := store.Set(ctx, draft); err != nil {
		return err
	}
	printSuccess("Saved %s", joinInts(final.Selected.Numbers()))
	printNextStep("Show draft", "seatplan draft show -t "+key.TripID+" -m "+key.BusModel.String()+" -d "+key.DepartureDate)
	return nil
}
