package client

import (
	"github.com/spf13/cobra"
)

// NewRoot constructs a root Cobra command for the InsightUI client.
// It registers the notify, monitor, and export command groups.
func NewRoot(baseURL BaseURLFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "insightui",
		Short: "InsightUI client commands",
	}
	root.AddCommand(NewNotifyCommand(baseURL))
	root.AddCommand(NewMonitorCommand(baseURL))
	root.AddCommand(NewExportCommand(baseURL))
	return root
}
