// Package client provides the `insightui` command-line client.
//
// The CLI talks to the InsightUI HTTP API to manage notifications and
// inspect the monitor from a terminal. It is primarily intended for
// developers and operators.
//
// Installation
//
//	go install github.com/FelipeFreitasRossi/InsightUI/cmd/insightui@latest
//
// Or build from this repo and use the embedded `insightui` binary.
//
// # Address configuration
//
// The HTTP base URL is discovered by the application that embeds the
// commands via a BaseURLFunc. When using the standalone binary, it is read
// from the INSIGHTUI_HTTP environment variable (default
// http://127.0.0.1:8080).
//
// Usage
//
//	insightui notify add --type warning --title "Disk" --message "Disk usage above 85%" --persist
//	insightui notify list --filter 'severity == "error" && !read'
//	insightui notify read --id 1735689600000-a1b2c3d4e
//	insightui notify read-all
//	insightui notify clear --confirm
//	insightui notify unread-count
//
//	# Tail the notification feed over SSE
//	insightui notify watch --filter 'severity in ["warning", "critical"]'
//
//	insightui monitor servers
//	insightui monitor history --hours 6
//	insightui monitor stats
//	insightui monitor watch --alerts-only
//
//	insightui export notifications --format xlsx --out notifications.xlsx
//
// Notes
//
//   - watch commands connect to the server's SSE endpoints and print one
//     JSON line per frame until interrupted.
//   - filter expressions are evaluated server-side; see the notification
//     API documentation for the available variables.
package client
