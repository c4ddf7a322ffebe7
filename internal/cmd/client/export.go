package client

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

// NewExportCommand constructs the `export` command group and subcommands.
func NewExportCommand(baseURL BaseURLFunc) *cobra.Command {
	exportCmd := &cobra.Command{Use: "export", Short: "Export operations"}
	exportCmd.AddCommand(newExportNotificationsCommand(baseURL))
	return exportCmd
}

// newExportNotificationsCommand constructs the `export notifications`
// subcommand. It downloads the current notification list as an artifact in
// the requested format.
func newExportNotificationsCommand(baseURL BaseURLFunc) *cobra.Command {
	notifCmd := &cobra.Command{
		Use:   "notifications",
		Short: "Export the current notification list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")

			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet,
				baseURL()+"/api/export/notifications?format="+url.QueryEscape(format), nil)
			if err != nil {
				return err
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return apiError(resp)
			}

			if out == "" {
				out = attachmentFilename(resp)
			}
			if out == "" || out == "-" {
				_, err := io.Copy(cmd.OutOrStdout(), resp.Body)
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if _, err := io.Copy(f, resp.Body); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "wrote:", out)
			return nil
		},
	}
	notifCmd.Flags().String("format", "csv", "Artifact format: csv|json|xlsx|pdf")
	notifCmd.Flags().String("out", "", "Output file (default: server-suggested name; - for stdout)")
	return notifCmd
}

// attachmentFilename extracts the server-suggested filename from the
// Content-Disposition header, if any.
func attachmentFilename(resp *http.Response) string {
	cd := resp.Header.Get("Content-Disposition")
	if cd == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(cd)
	if err != nil {
		return ""
	}
	return params["filename"]
}
