package cli

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/busline/seatplan/internal/server"
	"github.com/busline/seatplan/pkg/observability/prom"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the seat map HTTP API",
		Long: `Serve seat maps and selection toggles over HTTP.

Routes:
  GET  /api/v1/trips/{tripID}/layout?bus_model=&departure_date=&selected=
  POST /api/v1/selection/toggle
  GET  /metrics
  GET  /healthz`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context) error {
	logger := loggerFromContext(ctx)

	client, cc, err := c.newSeatClient(ctx)
	if err != nil {
		return err
	}
	defer cc.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom.New(reg).Install()

	srv := server.New(client, reg, logger)
	printInfo("Serving on %s", c.cfg.Server.Addr)
	return srv.ListenAndServe(ctx, server.Config{
		Addr:            c.cfg.Server.Addr,
		ReadTimeout:     c.cfg.Server.ReadTimeout.Duration,
		WriteTimeout:    c.cfg.Server.WriteTimeout.Duration,
		ShutdownTimeout: c.cfg.Server.ShutdownTimeout.Duration,
	})
}
