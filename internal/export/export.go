package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Format selects the artifact encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat validates a raw format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSON, FormatXLSX, FormatPDF:
		return Format(s), nil
	case "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("export: unsupported format %q", s)
	}
}

// Column maps a row key to a display title.
type Column struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// Options tune a single export call.
type Options struct {
	// Filename without extension; defaults to "export".
	Filename string
	// SheetName names the XLSX sheet; defaults to "Data".
	SheetName string
	// OmitTimestamp drops the _YYYY-MM-DD suffix from the filename.
	OmitTimestamp bool
	// Compact disables JSON indentation.
	Compact bool
}

// Artifact is a produced export ready to be written to a response or file.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Export encodes rows under the given column definitions into the requested
// format.
func Export(rows []map[string]any, cols []Column, format Format, opts Options) (Artifact, error) {
	name := opts.Filename
	if name == "" {
		name = "export"
	}
	if !opts.OmitTimestamp {
		name += "_" + time.Now().Format("2006-01-02")
	}

	switch format {
	case FormatCSV:
		data, err := toCSV(rows, cols)
		if err != nil {
			return Artifact{}, err
		}
		return Artifact{Filename: name + ".csv", ContentType: "text/csv", Data: data}, nil
	case FormatJSON:
		data, err := toJSON(rows, opts.Compact)
		if err != nil {
			return Artifact{}, err
		}
		return Artifact{Filename: name + ".json", ContentType: "application/json", Data: data}, nil
	case FormatXLSX:
		data, err := toXLSX(rows, cols, opts.SheetName)
		if err != nil {
			return Artifact{}, err
		}
		return Artifact{
			Filename:    name + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	case FormatPDF:
		data, err := toPDF(rows, cols)
		if err != nil {
			return Artifact{}, err
		}
		return Artifact{Filename: name + ".pdf", ContentType: "application/pdf", Data: data}, nil
	default:
		return Artifact{}, fmt.Errorf("export: unsupported format %q", format)
	}
}

func toCSV(rows []map[string]any, cols []Column) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Title
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	record := make([]string, len(cols))
	for _, row := range rows {
		for i, c := range cols {
			record[i] = cellString(row[c.Key])
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func toJSON(rows []map[string]any, compact bool) ([]byte, error) {
	if rows == nil {
		rows = []map[string]any{}
	}
	if compact {
		return json.Marshal(rows)
	}
	return json.MarshalIndent(rows, "", "  ")
}

// cellString renders a row value for tabular output.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", t)
	}
}
