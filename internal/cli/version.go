package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/busline/seatplan/pkg/buildinfo"
)

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(out, "%s %s\n", appName, buildinfo.String())
		},
	}
}
