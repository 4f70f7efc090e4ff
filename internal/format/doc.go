// Package format turns repository state and operation results into short
// human-readable labels.
//
// # Relative Time
//
// [RelativeTime] renders times the way the status view shows the last sync
// from main and remote branch activity: "just now", "5 minutes ago",
// "yesterday", "3 weeks ago". The zero time renders as "never".
//
// # Divergence
//
// [Divergence] renders ahead/behind counts against the main branch, e.g.
// "in sync", "2 ahead", "1 behind" or "2 ahead, 1 behind".
//
// # Results
//
// [ResultLine] renders an operation result with a check or cross mark and,
// for failures, the first line of the error detail.
package format
