// Package dataset loads the guardrail validator spreadsheet into an
// immutable in-memory [Table].
//
// A [Loader] reads its file at most once. Missing or unreadable files are
// not fatal: the loader yields an empty table together with an error that
// callers surface to the user in place of the table.
package dataset
