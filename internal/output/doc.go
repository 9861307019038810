// Package output renders filtered validator tables and delivers the
// rendered bytes.
//
// The package is organized around three concerns:
//
//   - Columns (columns.go): display labels and width hints per column.
//
//   - Formatting (format.go, registry.go): table, markdown, csv, json, yaml
//     and html renderers behind the [Formatter] interface, looked up by
//     name through a [Registry].
//
//   - Writers (writer.go): pluggable destinations via the [Writer]
//     interface, with [StdoutWriter] and [FileWriter] implementations.
package output
