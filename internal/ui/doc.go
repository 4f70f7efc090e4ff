// Package ui provides terminal output and interactive components for
// devflow.
//
// This package uses the Charm libraries: lipgloss for styles and tables,
// bubbletea and bubbles for the spinner, the fuzzy picker and the confirm
// prompt.
//
// # Static Output
//
//   - [RenderState]: repository snapshot (branch, main, divergence, changes,
//     changesets, unsynced remote branches)
//   - [RenderChangesets]: local changesets and unsynced remote branches
//   - [RenderResults]: one line per operation result
//   - [RenderTable]: borderless table with a bold header row
//
// Static output is written with output.Printer.Render, which downsamples
// colors to the detected terminal profile. [Plain] strips styling entirely,
// e.g. for the clipboard.
//
// # Interactive Components
//
// Interactive components render to stderr so stdout stays pipeable:
//
//   - [Spinner]: progress indicator for long-running operations
//   - [Pick]: fuzzy picker backed by sahilm/fuzzy
//   - [Confirm]: yes/no prompt defaulting to no
package ui
