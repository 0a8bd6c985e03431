package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the routing API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")

			a, err := c.load(cmd.Context())
			if err != nil {
				return err
			}
			return a.Serve(cmd.Context(), addr)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default from config, :8000)")
	return cmd
}
