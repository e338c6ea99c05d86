// Package mcp exposes the team finder's query operations as MCP tools so
// that tool-calling agents can search the team database directly.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/vgcpastes/team-finder/internal/config"
	"github.com/vgcpastes/team-finder/internal/metrics"
	"github.com/vgcpastes/team-finder/internal/models"
	"github.com/vgcpastes/team-finder/internal/services"
)

const (
	serverName    = "vgc-team-finder"
	serverVersion = "2.0.0"
)

// TeamSource supplies the current team snapshot to tool handlers. It is
// satisfied by *services.TeamStore.
type TeamSource interface {
	Teams() []models.Team
}

// Server wraps an MCP server around the team store and query engine.
type Server struct {
	mcp     *mcpsrv.MCPServer
	teams   TeamSource
	status  func() services.Status
	weights config.RecommendWeights
	logger  *slog.Logger
}

// New creates an MCP server backed by the given team source. The server is
// populated with all tools but does not listen until a Serve* method or
// Handler is used.
func New(teams TeamSource, status func() services.Status, weights config.RecommendWeights, lg *slog.Logger) *Server {
	if lg == nil {
		lg = slog.Default()
	}
	s := &Server{
		teams:   teams,
		status:  status,
		weights: weights,
		logger:  lg,
	}

	mcpServer := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithInstructions(instructions),
	)
	for _, t := range s.tools() {
		mcpServer.AddTool(t.Tool, instrumented(t))
	}
	s.mcp = mcpServer
	return s
}

const instructions = `You are connected to the VGC Team Finder MCP server.

The database holds competitive Pokemon VGC team compositions collected from
the community VGCPastes spreadsheet, across regulations C through J. Tools
let you search teams (use "and" to combine terms), look up rental codes,
compute usage statistics and teammates, find similar teams, and get
recommendations from a free-text description of the team you want.

All data is read-only and refreshed hourly from the spreadsheet.`

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	s.logger.InfoContext(ctx, "mcp server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// Handler returns an http.Handler speaking the Streamable HTTP transport,
// for mounting on the REST server's /mcp and /sse paths.
func (s *Server) Handler() http.Handler {
	return mcpsrv.NewStreamableHTTPServer(s.mcp)
}

// instrumented wraps a tool handler with a per-tool invocation counter.
func instrumented(t mcpsrv.ServerTool) mcpsrv.ToolHandlerFunc {
	return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		metrics.MCPToolCallsTotal.WithLabelValues(t.Tool.Name).Inc()
		return t.Handler(ctx, req)
	}
}

// tools returns all MCP tools this server exposes.
func (s *Server) tools() []mcpsrv.ServerTool {
	return []mcpsrv.ServerTool{
		s.toolSearchTeams(),
		s.toolGetRegulations(),
		s.toolSearchPokemonWithItem(),
		s.toolGetPokemonTeammates(),
		s.toolGetPokemonItems(),
		s.toolRandomTeam(),
		s.toolGetPokemonUsage(),
		s.toolGetItemUsage(),
		s.toolGetTeamByRental(),
		s.toolGetRentalTeams(),
		s.toolGetTournamentTeams(),
		s.toolGetPlayerTeams(),
		s.toolGetSimilarTeams(),
		s.toolRecommendTeams(),
	}
}

// resultText wraps text in a successful CallToolResult.
func resultText(text string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(text)
}

// resultErr wraps an error in a CallToolResult with IsError=true.
func resultErr(err error) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(err.Error())},
		IsError: true,
	}
}

// resultJSON serialises v to JSON and returns it as a CallToolResult.
func resultJSON(v any) (*mcplib.CallToolResult, error) {
	return mcplib.NewToolResultJSON(v)
}

// stringArg extracts a named string argument from a tool call request.
func stringArg(req mcplib.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intArg extracts a named int argument. The MCP protocol serialises numbers
// as float64, so convert accordingly.
func intArg(req mcplib.CallToolRequest, name string, defaultVal int) int {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return defaultVal
}

// stringSliceArg extracts a named []string argument.
func stringSliceArg(req mcplib.CallToolRequest, name string) []string {
	args := req.GetArguments()
	if args == nil {
		return nil
	}
	v, ok := args[name]
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
