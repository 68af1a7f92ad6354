// Package disclaimer validates governance disclaimers.
//
// Every function here is pure and total: malformed input is reported as an
// error finding, never returned as a Go error or a panic. Staleness depends
// on wall-clock time, so each call reads the clock again; the ...At variants
// take an explicit instant for callers that need a frozen clock.
package disclaimer
