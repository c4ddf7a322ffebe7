// Package monitorsvc implements the synthetic monitor behind the dashboard:
// randomly generated metric samples on a fixed interval, probabilistic
// warning/critical alerts, the demo server fleet, hourly history, and
// aggregate counters. Values are fabricated; nothing real is monitored.
package monitorsvc
