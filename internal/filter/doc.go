// Package filter narrows a validator table by tag selections. It extracts
// the tag options of the comma-separated filter columns and applies up to
// three independent any-of filters that combine with logical AND.
//
// The package is built around the [Filter] interface and [Chain] type.
// [Apply] is a pure function of a table and a [Selection]; it never
// depends on how the selection was made, so the terminal UI, the list
// command, the watcher and the MCP server share it.
package filter
