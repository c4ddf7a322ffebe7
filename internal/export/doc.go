// Package export produces downloadable artifacts from tabular in-memory
// data: CSV, JSON, XLSX, and PDF. Rows are open maps selected and titled by
// column definitions, mirroring the dashboard's export dialog.
package export
