package output

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// FormatterFactory creates a Formatter.
type FormatterFactory func() Formatter

// Registry maps format names to FormatterFactory functions, enabling
// pluggable output formats for the list and watch commands.
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]FormatterFactory
}

// NewRegistry creates an empty formatter registry.
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]FormatterFactory),
	}
}

// Register adds a formatter factory under the given format name.
// Existing entries for the same name are overwritten.
func (r *Registry) Register(name string, factory FormatterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.formatters[strings.ToLower(name)] = factory
}

// Formatter returns a new formatter for the named format. Names are case
// insensitive.
func (r *Registry) Formatter(name string) (Formatter, error) {
	r.mu.RLock()
	f, ok := r.formatters[strings.ToLower(name)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown output format %q (available: %s)", name, r.AvailableFormats())
	}

	return f(), nil
}

// Formats returns the sorted list of registered format names.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// AvailableFormats returns a comma-separated string of registered format names.
func (r *Registry) AvailableFormats() string {
	formats := r.Formats()
	if len(formats) == 0 {
		return "none"
	}

	return strings.Join(formats, ", ")
}

// DefaultRegistry returns a registry pre-populated with the built-in
// formats: table, markdown, csv, json, yaml, html.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register("table", func() Formatter { return &TableFormatter{} })
	r.Register("markdown", func() Formatter { return &MarkdownFormatter{} })
	r.Register("csv", func() Formatter { return &CSVFormatter{} })
	r.Register("json", func() Formatter { return &JSONFormatter{} })
	r.Register("yaml", func() Formatter { return &YAMLFormatter{} })
	r.Register("html", func() Formatter { return &HTMLFormatter{} })

	return r
}

// NewFormatter returns a formatter from the default registry.
func NewFormatter(name string) (Formatter, error) {
	return DefaultRegistry().Formatter(name)
}
