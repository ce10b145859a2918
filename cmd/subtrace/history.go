package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/SkyH34D/subtrace/internal/config"
	"github.com/SkyH34D/subtrace/internal/history"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded reconnaissance runs",
		Long: `History lists past reconnaissance runs recorded by the scan command.

Each entry shows the target domain, when the run finished, how long it
took, how many artifacts it produced, and where they were written.

Examples:
  # Show the most recent runs
  subtrace history

  # Show more entries
  subtrace history --limit 50

  # Show runs for one target only
  subtrace history --domain example.com`,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20,
		"Maximum number of entries to show (0 shows all)")
	cmd.Flags().StringP("domain", "d", "",
		"Only show runs for this domain")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	domain, err := cmd.Flags().GetString("domain")
	if err != nil {
		return err
	}

	opts := history.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	}
	db, err := history.Open(config.XDGDataDir(), opts)
	if err != nil {
		// A missing database just means nothing has been recorded yet.
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
		return nil
	}
	defer db.Close()

	var entries []history.Entry
	if domain != "" {
		entries, err = db.ForDomain(cmd.Context(), domain)
		if err == nil && limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}
	} else {
		entries, err = db.Recent(cmd.Context(), limit)
	}
	if err != nil {
		return fmt.Errorf("failed to read run history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tFINISHED\tDURATION\tARTIFACTS\tOUTPUT")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			entry.Domain,
			formatFinished(entry.FinishedAt),
			entry.Duration.Round(time.Second),
			entry.ArtifactCount,
			entry.OutputDir,
		)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to render history: %w", err)
	}

	return nil
}

// formatFinished renders a run timestamp, tolerating unparseable
// values stored by older versions.
func formatFinished(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format("2006-01-02 15:04")
}
