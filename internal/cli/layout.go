package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/busline/seatplan/pkg/errors"
	"github.com/busline/seatplan/pkg/integrations/seatdata"
	"github.com/busline/seatplan/pkg/planner"
	"github.com/busline/seatplan/pkg/render"
	"github.com/busline/seatplan/pkg/seatmap"
	"github.com/busline/seatplan/pkg/selection"
)

// Output formats for the layout command.
const (
	formatText = "text"
	formatJSON = "json"
)

// layoutOpts holds options for the layout command.
type layoutOpts struct {
	keyFlags
	selected []int
	format   string
	input    string
	output   string
	refresh  bool
	draft    bool
	noColor  bool
}

// layoutCommand creates the layout command for printing a trip's seat map.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{format: formatText}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the seat map for a trip",
		Long: `Fetch seat availability for a trip and print the seat map in the bus model's physical arrangement.

The trip id, bus model and departure date are all required to fetch seats.
With --input, the seat data is read from a file in the backend's format and
only --bus-model is needed.`,
		Example: `  seatplan layout -t 8841 -m vip -d 2025-03-14
  seatplan layout -t 8841 -m 580 -d 2025-03-14 --selected 3,4 -f json
  seatplan layout -m 580 --input seats.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().IntSliceVarP(&opts.selected, "selected", "s", nil, "seat numbers to mark as selected")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format: text, json")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "read seat data from a file instead of the API")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the layout to a file")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the seat-data cache")
	cmd.Flags().BoolVar(&opts.draft, "draft", false, "start from the saved booking draft for this trip")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colors in text output")

	return cmd
}

// runLayout executes the layout command.
func (c *CLI) runLayout(ctx context.Context, opts layoutOpts) error {
	if opts.format != formatText && opts.format != formatJSON {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want %s or %s)", opts.format, formatText, formatJSON)
	}
	logger := loggerFromContext(ctx)
	start := time.Now()

	var (
		state planner.State
		err   error
	)
	if opts.input != "" {
		state, err = stateFromFile(opts.input, opts.model)
	} else {
		state, err = c.loadState(ctx, opts.key(), opts.refresh)
	}
	if err != nil {
		return err
	}
	if !state.Available {
		printInfo("%s", state.Reason)
		return nil
	}

	sel := selection.New(opts.selected...)
	if opts.draft {
		if sel, err = c.draftSelection(ctx, state.Key, sel); err != nil {
			return err
		}
	}
	reconciled := selection.Reconcile(sel, state.Placed())
	if dropped := selection.Dropped(sel, reconciled); len(dropped) > 0 {
		printWarning("Dropped unavailable seats: %s", joinInts(dropped))
	}

	data, err := renderLayout(state.Layout, reconciled, opts)
	if err != nil {
		return err
	}

	if opts.output == "" {
		fmt.Fprint(out, data)
		if opts.format == formatText {
			s := render.Describe(state.Layout, reconciled).Summary
			printStats(s.Free, s.Booked, s.Selected, state.FetchedAt.Before(start))
		}
		return nil
	}

	if err := os.WriteFile(opts.output, []byte(data), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write layout")
	}
	logger.Debug("wrote layout", "path", opts.output, "bytes", len(data))
	printSuccess("Layout written")
	printFile(opts.output)
	return nil
}

// loadState fetches seats for key and builds its layout behind a spinner.
func (c *CLI) loadState(ctx context.Context, key seatdata.Key, refresh bool) (planner.State, error) {
	logger := loggerFromContext(ctx)

	client, cc, err := c.newSeatClient(ctx)
	if err != nil {
		return planner.State{}, err
	}
	defer cc.Close()

	loader := planner.NewLoader(client, nil, logger)
	if !key.Complete() {
		return loader.Load(ctx, key)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching seats for %s...", key))
	spinner.Start()
	prog := newProgress(logger)

	var state planner.State
	if refresh {
		state, err = loader.Reload(ctx, key)
	} else {
		state, err = loader.Load(ctx, key)
	}
	spinner.Stop()
	if err != nil {
		return planner.State{}, err
	}
	prog.done(fmt.Sprintf("Loaded %d seats", len(state.Placed())))
	return state, nil
}

// stateFromFile builds a layout from a seat-data file.
func stateFromFile(path, model string) (planner.State, error) {
	m, err := seatmap.ParseModel(model)
	if err != nil {
		return planner.State{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return planner.State{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open seat data")
	}
	defer f.Close()

	data, err := seatdata.Decode(f)
	if err != nil {
		return planner.State{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read seat data")
	}

	layout, err := seatmap.Build(m, data.Seats, data.Capacity)
	if err != nil {
		return planner.State{}, err
	}
	return planner.State{
		Key:       seatdata.Key{BusModel: m},
		Available: true,
		Layout:    layout,
		Seats:     data.Seats,
		Capacity:  data.Capacity,
		FetchedAt: data.FetchedAt,
	}, nil
}

// draftSelection merges the saved draft for key into sel.
func (c *CLI) draftSelection(ctx context.Context, key seatdata.Key, sel selection.Set) (selection.Set, error) {
	if !key.Complete() {
		return sel, nil
	}
	store, err := c.newDraftStore()
	if err != nil {
		return sel, err
	}
	d, err := store.Get(ctx, key)
	if err != nil || d == nil {
		return sel, err
	}
	return selection.New(append(sel.Numbers(), d.Seats...)...), nil
}

// renderLayout produces the layout in the requested format.
func renderLayout(l seatmap.Layout, sel selection.Set, opts layoutOpts) (string, error) {
	if opts.format == formatJSON {
		data, err := render.RenderJSON(l, sel)
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	}
	color := !opts.noColor && opts.output == "" && isatty.IsTerminal(os.Stdout.Fd())
	return render.RenderText(l, sel, render.TextOptions{Color: color, Legend: true}) + "\n", nil
}
