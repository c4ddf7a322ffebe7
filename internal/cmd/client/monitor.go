package client

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewMonitorCommand constructs the `monitor` command group and subcommands.
func NewMonitorCommand(baseURL BaseURLFunc) *cobra.Command {
	monitorCmd := &cobra.Command{Use: "monitor", Short: "Monitor operations"}

	monitorCmd.AddCommand(
		newMonitorServersCommand(baseURL),
		newMonitorHistoryCommand(baseURL),
		newMonitorStatsCommand(baseURL),
		newMonitorWatchCommand(baseURL),
	)

	return monitorCmd
}

// newMonitorServersCommand constructs the `monitor servers` subcommand.
func newMonitorServersCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "servers",
		Short: "List the server fleet with current utilization",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out []map[string]any
			if err := getJSON(cmd.Context(), baseURL, "/api/servers", &out); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}

// newMonitorHistoryCommand constructs the `monitor history` subcommand.
func newMonitorHistoryCommand(baseURL BaseURLFunc) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Print hourly metric samples for the trailing window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			hours, _ := cmd.Flags().GetInt("hours")
			path := "/api/metrics/history"
			if hours > 0 {
				path += "?hours=" + strconv.Itoa(hours)
			}
			var out []map[string]any
			if err := getJSON(cmd.Context(), baseURL, path, &out); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	historyCmd.Flags().Int("hours", 0, "Trailing window in hours (0 = retention window)")
	return historyCmd
}

// newMonitorStatsCommand constructs the `monitor stats` subcommand.
func newMonitorStatsCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print aggregate service counters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out map[string]any
			if err := getJSON(cmd.Context(), baseURL, "/api/stats", &out); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}

// newMonitorWatchCommand constructs the `monitor watch` subcommand.
func newMonitorWatchCommand(baseURL BaseURLFunc) *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Tail the live metrics/alert feed over SSE",
		RunE: func(cmd *cobra.Command, _ []string) error {
			alertsOnly, _ := cmd.Flags().GetBool("alerts-only")
			var events []string
			if alertsOnly {
				events = []string{"alert"}
			}
			if err := tailSSE(cmd, baseURL, "/api/events", events); err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			return nil
		},
	}
	watchCmd.Flags().Bool("alerts-only", false, "Print only alert frames")
	return watchCmd
}
