// Package client contains Cobra CLI commands for InsightUI.
package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

// NewNotifyCommand constructs the `notify` command group and subcommands.
func NewNotifyCommand(baseURL BaseURLFunc) *cobra.Command {
	notifyCmd := &cobra.Command{Use: "notify", Short: "Notification operations"}

	notifyCmd.AddCommand(
		newNotifyListCommand(baseURL),
		newNotifyAddCommand(baseURL),
		newNotifyReadCommand(baseURL),
		newNotifyReadAllCommand(baseURL),
		newNotifyRemoveCommand(baseURL),
		newNotifyClearCommand(baseURL),
		newNotifyUnreadCommand(baseURL),
		newNotifyWatchCommand(baseURL),
	)

	return notifyCmd
}

// newNotifyListCommand constructs the `notify list` subcommand.
func newNotifyListCommand(baseURL BaseURLFunc) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List current notifications, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, _ := cmd.Flags().GetString("filter")
			path := "/api/notifications"
			if filter != "" {
				path += "?filter=" + url.QueryEscape(filter)
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
	listCmd.Flags().String("filter", "", "CEL filter (server-side), e.g. severity == \"error\" && !read")
	return listCmd
}

// newNotifyAddCommand constructs the `notify add` subcommand.
func newNotifyAddCommand(baseURL BaseURLFunc) *cobra.Command {
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a notification",
		RunE: func(cmd *cobra.Command, _ []string) error {
			typ, _ := cmd.Flags().GetString("type")
			title, _ := cmd.Flags().GetString("title")
			message, _ := cmd.Flags().GetString("message")
			durationMs, _ := cmd.Flags().GetInt64("duration-ms")
			persist, _ := cmd.Flags().GetBool("persist")
			priority, _ := cmd.Flags().GetInt("priority")
			metadataJSON, _ := cmd.Flags().GetString("metadata")

			body := map[string]any{
				"type":    typ,
				"title":   title,
				"message": message,
			}
			if durationMs > 0 {
				body["duration_ms"] = durationMs
			}
			if persist {
				body["persist"] = true
			}
			if priority != 0 {
				body["priority"] = priority
			}
			if metadataJSON != "" {
				var md map[string]any
				if err := json.Unmarshal([]byte(metadataJSON), &md); err != nil {
					return fmt.Errorf("invalid --metadata: %w", err)
				}
				body["metadata"] = md
			}

			var out map[string]string
			if err := postJSON(cmd.Context(), baseURL, "/api/notifications", body, &out); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "id:", out["id"])
			return nil
		},
	}
	addCmd.Flags().String("type", "info", "Severity: info|success|warning|error|critical")
	addCmd.Flags().String("title", "", "Notification title")
	addCmd.Flags().String("message", "", "Notification message")
	addCmd.Flags().Int64("duration-ms", 0, "Auto-dismiss after this many ms (0 = sticky)")
	addCmd.Flags().Bool("persist", false, "Persist across restarts")
	addCmd.Flags().Int("priority", 0, "Priority hint carried in metadata")
	addCmd.Flags().String("metadata", "", "Metadata as a JSON object")
	return addCmd
}

// newNotifyReadCommand constructs the `notify read` subcommand.
func newNotifyReadCommand(baseURL BaseURLFunc) *cobra.Command {
	readCmd := &cobra.Command{
		Use:   "read",
		Short: "Mark one notification as read",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString("id")
			if id == "" {
				return fmt.Errorf("--id is required")
			}
			if err := postJSON(cmd.Context(), baseURL, "/api/notifications/read", map[string]string{"id": id}, nil); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "status:", "OK")
			return nil
		},
	}
	readCmd.Flags().String("id", "", "Notification id")
	return readCmd
}

// newNotifyReadAllCommand constructs the `notify read-all` subcommand.
func newNotifyReadAllCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := postJSON(cmd.Context(), baseURL, "/api/notifications/read-all", nil, nil); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "status:", "OK")
			return nil
		},
	}
}

// newNotifyRemoveCommand constructs the `notify remove` subcommand.
func newNotifyRemoveCommand(baseURL BaseURLFunc) *cobra.Command {
	removeCmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove one notification",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString("id")
			if id == "" {
				return fmt.Errorf("--id is required")
			}
			if err := postJSON(cmd.Context(), baseURL, "/api/notifications/remove", map[string]string{"id": id}, nil); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "status:", "OK")
			return nil
		},
	}
	removeCmd.Flags().String("id", "", "Notification id")
	return removeCmd
}

// newNotifyClearCommand constructs the `notify clear` subcommand.
func newNotifyClearCommand(baseURL BaseURLFunc) *cobra.Command {
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every notification (requires --confirm)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			confirm, _ := cmd.Flags().GetBool("confirm")
			if !confirm {
				return fmt.Errorf("refusing to clear without --confirm")
			}
			if err := postJSON(cmd.Context(), baseURL, "/api/notifications/clear", nil, nil); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "status:", "OK")
			return nil
		},
	}
	clearCmd.Flags().Bool("confirm", false, "Confirm clearing all notifications")
	return clearCmd
}

// newNotifyUnreadCommand constructs the `notify unread-count` subcommand.
func newNotifyUnreadCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "unread-count",
		Short: "Print the unread counter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out map[string]int
			if err := getJSON(cmd.Context(), baseURL, "/api/notifications/unread-count", &out); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out["count"])
			return nil
		},
	}
}

// newNotifyWatchCommand constructs the `notify watch` subcommand.
func newNotifyWatchCommand(baseURL BaseURLFunc) *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Tail the notification feed over SSE",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, _ := cmd.Flags().GetString("filter")
			path := "/api/notifications/subscribe"
			if filter != "" {
				path += "?filter=" + url.QueryEscape(filter)
			}
			return tailSSE(cmd, baseURL, path, nil)
		},
	}
	watchCmd.Flags().String("filter", "", "CEL filter (server-side)")
	return watchCmd
}
