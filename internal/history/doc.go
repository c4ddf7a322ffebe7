// Package history implements the recorded metric-history log.
//
// Samples are persisted in Pebble under metrics/hour/{ms_be8}; the
// big-endian millisecond suffix keeps keys lexicographically ordered by
// time, so serving the history endpoint is a single bounded range scan.
// The recorder appends one sample per hour turn and trims past the
// retention window.
package history
