package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newFreshnessCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "freshness",
		Short: "Show when the agenda data was last refreshed",
		RunE: withRuntime(opts, func(cmd *cobra.Command, rt *runtime) error {
			f, err := rt.service.Freshness(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if f == nil {
				fmt.Fprintln(out, "Agenda data refresh time is unknown.")
				return nil
			}
			fmt.Fprintf(out, "Agenda data last refreshed at: %s %s (%s)\n",
				f.Formatted, f.At.Format("MST"), humanize.Time(f.At))
			return nil
		}),
	}
}
