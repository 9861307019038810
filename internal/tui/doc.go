// Package tui implements the interactive validator browser: a sidebar of
// three multi-select tag filters next to a results table that is recomputed
// on every selection change.
package tui
