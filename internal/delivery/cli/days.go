package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"agendafeed/internal/domain"
)

func newDaysCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "days",
		Short: "List the days in the agenda",
		RunE: withRuntime(opts, func(cmd *cobra.Command, rt *runtime) error {
			days, defaultDay, err := rt.service.Days(cmd.Context())
			if err != nil {
				return err
			}
			sel, err := rt.service.Selection(cmd.Context(), opts.clientID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(days) == 0 {
				fmt.Fprintln(out, "No days found.")
				return nil
			}
			for _, d := range days {
				marker := " "
				if d == sel.Day {
					marker = "*"
				}
				note := ""
				if d == defaultDay {
					note = " (default)"
				}
				fmt.Fprintf(out, "%s %s  %s%s\n", marker, d, domain.FormatDayLabel(d), note)
			}
			return nil
		}),
	}
}
