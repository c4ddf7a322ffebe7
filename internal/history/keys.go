package history

import (
	"encoding/binary"
)

// Keyspace helpers for Pebble keys.
//
// Layout (byte-wise, lexicographically sortable):
// - metrics/hour/{ms_be8}

var samplePrefix = []byte("metrics/hour/")

func appendBE8(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

// KeySample builds the sample key with a big-endian millisecond timestamp for
// proper ordering.
func KeySample(ms int64) []byte {
	k := make([]byte, 0, len(samplePrefix)+8)
	k = append(k, samplePrefix...)
	k = appendBE8(k, uint64(ms))
	return k
}

// SampleBounds returns the [lower, upper) iterator bounds for samples with
// timestamps in [fromMs, toMs).
func SampleBounds(fromMs, toMs int64) (lower, upper []byte) {
	return KeySample(fromMs), KeySample(toMs)
}

// SampleMs extracts the millisecond timestamp from a sample key. Returns 0
// for keys outside the sample keyspace.
func SampleMs(key []byte) int64 {
	if len(key) != len(samplePrefix)+8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(key[len(samplePrefix):]))
}
