// Package mcpserver exposes the validator catalog as Model Context Protocol
// tools over stdio.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hupe1980/guardbrowse/internal/dataset"
	"github.com/hupe1980/guardbrowse/internal/filter"
	"github.com/hupe1980/guardbrowse/internal/output"
)

// Name is the server name reported to MCP clients.
const Name = "guardbrowse"

// Tool names.
const (
	ToolListTags         = "list_tags"
	ToolFilterValidators = "filter_validators"
	ToolListPresets      = "list_presets"
)

// Options configures the server.
type Options struct {
	// Mode is the match mode used when a call does not name one.
	Mode filter.MatchMode

	// Presets are the named selections available to filter_validators.
	Presets map[string]filter.Preset

	// Version is reported to clients.
	Version string

	// Logger receives per-call logs. It must not write to the protocol stream.
	Logger *slog.Logger
}

// Server serves the catalog loaded by a dataset.Loader.
type Server struct {
	loader *dataset.Loader
	opts   Options
	mcp    *server.MCPServer
}

// New creates a server and registers its tools.
func New(loader *dataset.Loader, opts Options) *Server {
	if opts.Mode == "" {
		opts.Mode = filter.MatchSubstring
	}

	if opts.Version == "" {
		opts.Version = "dev"
	}

	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		loader: loader,
		opts:   opts,
		mcp:    server.NewMCPServer(Name, opts.Version),
	}

	s.mcp.AddTool(mcp.NewTool(ToolListTags,
		mcp.WithDescription("List the sorted distinct tags of a validator filter column."),
		mcp.WithString("column",
			mcp.Required(),
			mcp.Description("Filter column: use-cases, risk or content-type"),
		),
	), s.handleListTags)

	s.mcp.AddTool(mcp.NewTool(ToolFilterValidators,
		mcp.WithDescription("Filter guardrail validators by tags. A row matches when, for every "+
			"category with tags, its cell contains at least one of them. Empty categories are not filtered."),
		mcp.WithString("use_cases", mcp.Description("Comma-separated Use Cases tags")),
		mcp.WithString("risk_categories", mcp.Description("Comma-separated Risk Category tags")),
		mcp.WithString("content_types", mcp.Description("Comma-separated Content Type tags")),
		mcp.WithString("match", mcp.Description("Match mode: substring (default) or token")),
		mcp.WithString("preset", mcp.Description("Named preset selection to start from")),
	), s.handleFilterValidators)

	s.mcp.AddTool(mcp.NewTool(ToolListPresets,
		mcp.WithDescription("List the configured preset selections."),
	), s.handleListPresets)

	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// Serve speaks the protocol on in/out until ctx is cancelled or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.opts.Logger.Info("serving MCP on stdio", slog.String("file", s.loader.Path()))

	if err := server.NewStdioServer(s.mcp).Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("serving MCP: %w", err)
	}

	return nil
}

func (s *Server) load(ctx context.Context) (*dataset.Result, *mcp.CallToolResult) {
	res := s.loader.Load(ctx)
	if !res.OK() {
		s.opts.Logger.Warn("spreadsheet unavailable", slog.String("error", res.Err.Error()))
		return nil, errorResult(res.Notice())
	}

	return res, nil
}

func (s *Server) handleListTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := stringArg(req, "column")

	col, ok := dataset.ResolveFilterColumn(name)
	if !ok {
		return errorResult(fmt.Sprintf("unknown column %q: must be one of use-cases, risk, content-type", name)), nil
	}

	res, failed := s.load(ctx)
	if failed != nil {
		return failed, nil
	}

	tags := filter.Options(res.Table, col)

	s.opts.Logger.Debug("tool call", slog.String("tool", ToolListTags), slog.String("column", col), slog.Int("tags", len(tags)))

	return jsonResult(struct {
		Column string   `json:"column"`
		Tags   []string `json:"tags"`
	}{col, tags})
}

func (s *Server) handleFilterValidators(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode := s.opts.Mode

	if m := stringArg(req, "match"); m != "" {
		parsed, err := filter.ParseMatchMode(m)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		mode = parsed
	}

	var sel filter.Selection

	if name := stringArg(req, "preset"); name != "" {
		preset, err := filter.ResolvePreset(name, s.opts.Presets)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		sel = preset
	}

	var explicit filter.Selection
	explicit.Set(dataset.ColumnUseCases, filter.SplitTags(stringArg(req, "use_cases")))
	explicit.Set(dataset.ColumnRiskCategory, filter.SplitTags(stringArg(req, "risk_categories")))
	explicit.Set(dataset.ColumnContentType, filter.SplitTags(stringArg(req, "content_types")))

	sel = sel.Merge(explicit)

	res, failed := s.load(ctx)
	if failed != nil {
		return failed, nil
	}

	result := filter.Apply(res.Table, sel, mode)

	s.opts.Logger.Debug("tool call",
		slog.String("tool", ToolFilterValidators),
		slog.Int("count", result.Count),
		slog.String("match", string(mode)),
	)

	var buf bytes.Buffer
	if err := (&output.JSONFormatter{}).Format(&buf, result); err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}

	return mcp.NewToolResultText(buf.String()), nil
}

type presetInfo struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Selection   filter.Selection `json:"selection"`
}

func (s *Server) handleListPresets(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos := make([]presetInfo, 0, len(s.opts.Presets))

	for _, name := range filter.PresetNames(s.opts.Presets) {
		sel, err := filter.ResolvePreset(name, s.opts.Presets)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		infos = append(infos, presetInfo{
			Name:        name,
			Description: s.opts.Presets[name].Description,
			Selection:   sel,
		})
	}

	return jsonResult(infos)
}

// stringArg returns a string argument. Array arguments are joined with
// commas so clients may send tags either way.
func stringArg(req mcp.CallToolRequest, name string) string {
	switch v := req.Params.Arguments[name].(type) {
	case string:
		return v
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}

		return strings.Join(parts, ",")
	default:
		return ""
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}

	return mcp.NewToolResultText(string(data)), nil
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(msg)},
		IsError: true,
	}
}
