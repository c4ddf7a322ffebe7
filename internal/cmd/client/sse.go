package client

import (
	"bufio"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

// tailSSE connects to an SSE endpoint and prints one JSON line per frame,
// wrapping the payload as {"event": name, "data": payload}. It returns when
// the command context is cancelled or the server closes the stream. events,
// when non-empty, whitelists the event names to print.
func tailSSE(cmd *cobra.Command, base BaseURLFunc, path string, events []string) error {
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, base()+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	wanted := map[string]bool{}
	for _, e := range events {
		wanted[e] = true
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var event string
	var data strings.Builder
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			if event != "" && (len(wanted) == 0 || wanted[event]) {
				var payload any
				if err := json.Unmarshal([]byte(data.String()), &payload); err == nil {
					_ = enc.Encode(map[string]any{"event": event, "data": payload})
				}
			}
			event = ""
			data.Reset()
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data.WriteString(strings.TrimPrefix(line, "data: "))
		}
	}
	if err := sc.Err(); err != nil && cmd.Context().Err() == nil {
		return err
	}
	return nil
}
