package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"agendafeed/internal/domain"
)

func newListCmd(opts *options) *cobra.Command {
	var (
		day     string
		tier    string
		allDays bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions for the selected day and tier",
		Long: `List sessions ordered by start time.

--day and --tier change the remembered selection, like picking them in
the web agenda. Without them the last choice is used.

Examples:
  agenda list
  agenda list --day 2025-05-14
  agenda list --tier Gold
  agenda list --all-days --tier Platinum`,
	}
	cmd.Flags().StringVar(&day, "day", "", "Day to show (YYYY-MM-DD)")
	cmd.Flags().StringVar(&tier, "tier", "", "Access tier to show (All, General, Premium, Platinum, Gold, ...)")
	cmd.Flags().BoolVar(&allDays, "all-days", false, "Show every day without changing the remembered day")

	cmd.RunE = withRuntime(opts, func(cmd *cobra.Command, rt *runtime) error {
		ctx := cmd.Context()
		if day != "" {
			if _, err := rt.service.ChangeDay(ctx, opts.clientID, day); err != nil {
				return err
			}
		}
		if tier != "" {
			if _, err := rt.service.ChangeTier(ctx, opts.clientID, tier); err != nil {
				return err
			}
		}

		var override domain.ViewOverride
		if allDays {
			all := ""
			override.Day = &all
		}
		view, err := rt.service.View(ctx, opts.clientID, override)
		if err != nil {
			return fmt.Errorf("failed to build agenda: %w", err)
		}
		printView(cmd.OutOrStdout(), view)
		return nil
	})
	return cmd
}

func printView(w io.Writer, view *domain.AgendaView) {
	dayLabel := "All days"
	if view.SelectedDay != "" {
		dayLabel = domain.FormatDayLabel(view.SelectedDay)
	}
	fmt.Fprintf(w, "%s · %s · %d session(s)\n", dayLabel, view.SelectedTier, len(view.Sessions))
	if view.Freshness != nil {
		fmt.Fprintf(w, "Agenda data last refreshed at: %s\n", view.Freshness.Formatted)
	}
	fmt.Fprintln(w)

	if len(view.Sessions) == 0 {
		fmt.Fprintln(w, "No sessions found matching your filters.")
		return
	}

	for _, s := range view.Sessions {
		fmt.Fprintf(w, "%-9s %s\n", s.DisplayStartTime, truncate(s.Title, 72))

		var meta []string
		if s.DurationMinutes > 0 {
			meta = append(meta, fmt.Sprintf("%d min", s.DurationMinutes))
		}
		if s.SessionType != "" {
			meta = append(meta, s.SessionType)
		}
		if s.DifficultyLevel != "" {
			meta = append(meta, s.DifficultyLevel)
		}
		if s.Location != "" {
			meta = append(meta, s.Location)
		}
		if s.IsUnlockable {
			meta = append(meta, "Unlockable")
		}
		if len(meta) > 0 {
			fmt.Fprintf(w, "%-9s %s\n", "", strings.Join(meta, " • "))
		}
		if sp, ok := s.PrimarySpeaker(); ok {
			fmt.Fprintf(w, "%-9s %s\n", "", speakerLine(sp))
		}
		line := "[" + strings.Join(s.AccessTiers, ", ") + "]"
		for _, tag := range s.CompactTags() {
			line += " #" + tag
		}
		fmt.Fprintf(w, "%-9s %s\n\n", "", line)
	}
}

func speakerLine(sp domain.SpeakerSummary) string {
	line := sp.Name
	if sp.Title != "" {
		line += " (" + sp.Title + ")"
	}
	if sp.Company != "" {
		line += " - " + sp.Company
	}
	return line
}

// truncate shortens s to maxLen runes, breaking at a word when one is near.
func truncate(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	cut := string(runes[:maxLen])
	if i := strings.LastIndex(cut, " "); i > len(cut)-20 && i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
