// Package watch re-runs a listing whenever the validator spreadsheet
// changes on disk. It watches the file's directory, debounces rapid
// events, and reports which validators were added, removed or changed
// between two consecutive runs.
package watch
