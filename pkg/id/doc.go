// Package id provides unique notification identifiers.
//
// # Format
//
// IDs are strings of the form "{unix_ms}-{random}": a millisecond timestamp
// followed by a 9-character random suffix. Comparing the millisecond
// components of two IDs orders them by creation time.
//
// # Monotonicity
//
// The Generator pins the millisecond component to the last seen value when
// the system clock regresses, so IDs never appear to have been created
// earlier than a previously issued ID.
//
// Usage
//
//	g := id.NewGenerator()
//	newID := g.Next()
package id
