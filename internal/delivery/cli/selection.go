package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSelectionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "selection",
		Short: "Show the remembered day and tier",
		RunE: withRuntime(opts, func(cmd *cobra.Command, rt *runtime) error {
			sel, err := rt.service.Selection(cmd.Context(), opts.clientID)
			if err != nil {
				return err
			}
			day := sel.Day
			if day == "" {
				day = "(all days)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "day:  %s\ntier: %s\n", day, sel.AccessTier)
			return nil
		}),
	}
}
