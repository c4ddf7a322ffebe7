package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/FelipeFreitasRossi/InsightUI/internal/export"
	"github.com/FelipeFreitasRossi/InsightUI/internal/runtime"
)

// ExportController produces downloadable artifacts from tabular request data
// or from the current notification list.
type ExportController struct {
	rt *runtime.Runtime
}

// NewExportController creates a new export controller.
func NewExportController(rt *runtime.Runtime) *ExportController {
	return &ExportController{rt: rt}
}

// RegisterRoutes registers export routes with the given mux.
func (c *ExportController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/export", c.handleExport)
	mux.HandleFunc("/api/export/notifications", c.handleExportNotifications)
}

type exportReq struct {
	Format        string           `json:"format"`
	Filename      string           `json:"filename,omitempty"`
	SheetName     string           `json:"sheetName,omitempty"`
	OmitTimestamp bool             `json:"omitTimestamp,omitempty"`
	Compact       bool             `json:"compact,omitempty"`
	Columns       []export.Column  `json:"columns"`
	Rows          []map[string]any `json:"rows"`
}

// handleExport encodes caller-supplied rows/columns into the requested
// format and returns the artifact as an attachment.
func (c *ExportController) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req exportReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unsupported format")
		return
	}
	if len(req.Columns) == 0 {
		writeError(w, http.StatusBadRequest, "At least one column is required")
		return
	}
	artifact, err := export.Export(req.Rows, req.Columns, format, export.Options{
		Filename:      req.Filename,
		SheetName:     req.SheetName,
		OmitTimestamp: req.OmitTimestamp,
		Compact:       req.Compact,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Export failed")
		return
	}
	writeArtifact(w, artifact)
}

// handleExportNotifications exports the current notification list in the
// format given by the format query (default csv).
func (c *ExportController) handleExportNotifications(w http.ResponseWriter, r *http.Request) {
	formatStr := r.URL.Query().Get("format")
	if formatStr == "" {
		formatStr = "csv"
	}
	format, err := export.ParseFormat(formatStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unsupported format")
		return
	}

	cols := []export.Column{
		{Key: "id", Title: "ID"},
		{Key: "type", Title: "Type"},
		{Key: "title", Title: "Title"},
		{Key: "message", Title: "Message"},
		{Key: "timestamp", Title: "Timestamp"},
		{Key: "read", Title: "Read"},
	}
	list := c.rt.Notifications().GetNotifications()
	rows := make([]map[string]any, 0, len(list))
	for _, n := range list {
		rows = append(rows, map[string]any{
			"id":        n.ID,
			"type":      string(n.Type),
			"title":     n.Title,
			"message":   n.Message,
			"timestamp": n.Timestamp,
			"read":      n.Read,
		})
	}

	artifact, err := export.Export(rows, cols, format, export.Options{Filename: "notifications"})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Export failed")
		return
	}
	writeArtifact(w, artifact)
}

func writeArtifact(w http.ResponseWriter, a export.Artifact) {
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+a.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
	_, _ = w.Write(a.Data)
}
