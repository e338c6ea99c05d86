package mcp

// In this file: MCP tool definitions and handler implementations. Every
// handler is a pure read over the current team snapshot; argument problems
// and not-found conditions are returned as tool results, never as protocol
// errors.

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/vgcpastes/team-finder/internal/models"
	"github.com/vgcpastes/team-finder/internal/query"
)

// formatTeam renders one team in the compact layout shared by most tools.
func formatTeam(t *models.Team) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** [Reg %s] - %s - %s\n", t.TeamID, t.Regulation, t.Player, t.Description)
	fmt.Fprintf(&b, "%s - %s", t.Date, t.Event)
	if t.Rank != "" && t.Rank != "-" {
		fmt.Fprintf(&b, " (%s)", t.Rank)
	}
	b.WriteString("\n")
	names := make([]string, 0, len(t.Pokemon))
	for _, p := range t.Pokemon {
		names = append(names, fmt.Sprintf("%s (%s)", p.Name, p.Item))
	}
	b.WriteString(strings.Join(names, " / "))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Pokepaste: %s", t.Pokepaste)
	if t.HasRentalCode() {
		fmt.Fprintf(&b, " | Rental: %s", t.RentalCode)
	}
	return b.String()
}

func formatTeamList(teams []models.Team) string {
	var b strings.Builder
	for i := range teams {
		b.WriteString(formatTeam(&teams[i]))
		b.WriteString("\n\n")
	}
	return b.String()
}

// ─── search_teams ─────────────────────────────────────────────────────────────

func (s *Server) toolSearchTeams() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_teams",
		mcplib.WithDescription(`Search VGC teams by Pokemon, player, event, item, or regulation. Use "and" to combine terms (e.g. "Flutter Mane and Incineroar", "Worlds", "Reg G"). Common abbreviations ("incin", "av", "specs") are expanded automatically.`),
		mcplib.WithString("query",
			mcplib.Description(`Search query. Use "and" for multiple terms.`),
			mcplib.Required(),
		),
		mcplib.WithString("regulation",
			mcplib.Description("Filter by regulation letter (J, I, H, G, F, E, D, C). Empty for all."),
		),
		mcplib.WithNumber("min_placement",
			mcplib.Description("Keep only teams that placed at least this well (e.g. 8 for Top 8 or better)."),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Number of results (default 50, max 500)"),
		),
		mcplib.WithString("sort",
			mcplib.Description(`"recent" (default) or "oldest"`),
			mcplib.Enum("recent", "oldest"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchTeams}
}

func (s *Server) handleSearchTeams(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	q, ok := stringArg(req, "query")
	if !ok || strings.TrimSpace(q) == "" {
		return resultText("Please provide a search query."), nil
	}
	regulation, _ := stringArg(req, "regulation")
	sortOrder, _ := stringArg(req, "sort")
	limit := clamp(intArg(req, "limit", 50), 1, 500)

	result := query.Search(s.teams.Teams(), q, query.SearchOptions{
		Regulation:   regulation,
		MinPlacement: intArg(req, "min_placement", 0),
		Sort:         sortOrder,
		Limit:        limit,
	})

	text := fmt.Sprintf("Found %d teams matching your search\n\n%s", result.Total, formatTeamList(result.Teams))
	return resultText(text), nil
}

// ─── get_regulations ──────────────────────────────────────────────────────────

func (s *Server) toolGetRegulations() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_regulations",
		mcplib.WithDescription("List the available regulations and how many teams are loaded for each."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetRegulations}
}

func (s *Server) handleGetRegulations(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	st := s.status()
	result, err := resultJSON(map[string]any{
		"totalTeams":  st.TeamsLoaded,
		"regulations": st.RegulationCounts,
	})
	if err != nil {
		return resultErr(fmt.Errorf("get_regulations: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── search_pokemon_with_item ─────────────────────────────────────────────────

func (s *Server) toolSearchPokemonWithItem() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_pokemon_with_item",
		mcplib.WithDescription("Find teams where a specific Pokemon holds a specific item (e.g. Incineroar with Assault Vest)."),
		mcplib.WithString("pokemon",
			mcplib.Description(`Pokemon name (e.g. "Incineroar", "Flutter Mane")`),
			mcplib.Required(),
		),
		mcplib.WithString("item",
			mcplib.Description(`Item name (e.g. "Assault Vest", "Choice Specs")`),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Number of results (default 20, max 100)"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchPokemonWithItem}
}

func (s *Server) handleSearchPokemonWithItem(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	pokemon, _ := stringArg(req, "pokemon")
	item, _ := stringArg(req, "item")
	if pokemon == "" || item == "" {
		return resultText("Please provide both a Pokemon and an item."), nil
	}
	limit := clamp(intArg(req, "limit", 20), 1, 100)

	teams := query.TeamsWith(s.teams.Teams(), pokemon, item)
	if len(teams) == 0 {
		return resultText(fmt.Sprintf("No teams found with %s holding %s.", pokemon, item)), nil
	}
	if len(teams) > limit {
		teams = teams[:limit]
	}
	text := fmt.Sprintf("**Teams with %s + %s** (%d found)\n\n%s", pokemon, item, len(teams), formatTeamList(teams))
	return resultText(text), nil
}

// ─── get_pokemon_teammates ────────────────────────────────────────────────────

func (s *Server) toolGetPokemonTeammates() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_pokemon_teammates",
		mcplib.WithDescription("Most common teammates for a Pokemon across all loaded teams."),
		mcplib.WithString("pokemon",
			mcplib.Description("Pokemon name"),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Number of teammates (default 10, max 20)"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetPokemonTeammates}
}

func (s *Server) handleGetPokemonTeammates(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	pokemon, _ := stringArg(req, "pokemon")
	if pokemon == "" {
		return resultText("Please provide a Pokemon name."), nil
	}
	limit := clamp(intArg(req, "limit", 10), 1, 20)

	teammates, poolSize := query.Teammates(s.teams.Teams(), pokemon, limit)
	if poolSize == 0 {
		return resultText(fmt.Sprintf("No teams found with %s.", pokemon)), nil
	}
	result, err := resultJSON(map[string]any{
		"pokemon":    pokemon,
		"totalTeams": poolSize,
		"teammates":  teammates,
	})
	if err != nil {
		return resultErr(fmt.Errorf("get_pokemon_teammates: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_pokemon_items ────────────────────────────────────────────────────────

func (s *Server) toolGetPokemonItems() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_pokemon_items",
		mcplib.WithDescription("Which items a Pokemon most commonly holds, with usage percentages."),
		mcplib.WithString("pokemon",
			mcplib.Description("Pokemon name"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetPokemonItems}
}

func (s *Server) handleGetPokemonItems(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	pokemon, _ := stringArg(req, "pokemon")
	if pokemon == "" {
		return resultText("Please provide a Pokemon name."), nil
	}

	items, total := query.ItemsFor(s.teams.Teams(), pokemon)
	if total == 0 {
		return resultText(fmt.Sprintf("No data found for %s.", pokemon)), nil
	}
	result, err := resultJSON(map[string]any{
		"pokemon":    pokemon,
		"totalCount": total,
		"items":      items,
	})
	if err != nil {
		return resultErr(fmt.Errorf("get_pokemon_items: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── random_team ──────────────────────────────────────────────────────────────

func (s *Server) toolRandomTeam() mcpsrv.ServerTool {
	tool := mcplib.NewTool("random_team",
		mcplib.WithDescription("Return a random team for inspiration, optionally containing a given Pokemon or from a given regulation."),
		mcplib.WithString("pokemon",
			mcplib.Description("Require this Pokemon on the team"),
		),
		mcplib.WithString("regulation",
			mcplib.Description("Restrict to one regulation letter"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleRandomTeam}
}

func (s *Server) handleRandomTeam(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	pokemon, _ := stringArg(req, "pokemon")
	regulation, _ := stringArg(req, "regulation")

	pool := s.teams.Teams()
	if regulation != "" {
		pool = query.Search(pool, "", query.SearchOptions{Regulation: regulation}).Teams
	}
	if pokemon != "" {
		pool = query.TeamsWith(pool, pokemon, "")
	}
	if len(pool) == 0 {
		if pokemon != "" {
			return resultText(fmt.Sprintf("No teams found with %s.", pokemon)), nil
		}
		return resultText("No teams available."), nil
	}

	team := pool[rand.Intn(len(pool))]
	return resultText("**Random Team**\n\n" + formatTeam(&team)), nil
}

// ─── get_pokemon_usage ────────────────────────────────────────────────────────

func (s *Server) toolGetPokemonUsage() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_pokemon_usage",
		mcplib.WithDescription("Pokemon usage statistics across loaded teams, optionally per regulation."),
		mcplib.WithString("regulation",
			mcplib.Description("Restrict to one regulation letter"),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Number of entries (default 20, max 100)"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetPokemonUsage}
}

func (s *Server) handleGetPokemonUsage(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	regulation, _ := stringArg(req, "regulation")
	limit := clamp(intArg(req, "limit", 20), 1, 100)

	pool := s.teams.Teams()
	if regulation != "" {
		pool = query.Search(pool, "", query.SearchOptions{Regulation: regulation}).Teams
	}
	usage := query.PokemonUsage(pool, limit)

	result, err := resultJSON(map[string]any{
		"totalTeams": len(pool),
		"usage":      usage,
	})
	if err != nil {
		return resultErr(fmt.Errorf("get_pokemon_usage: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_item_usage ───────────────────────────────────────────────────────────

func (s *Server) toolGetItemUsage() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_item_usage",
		mcplib.WithDescription("Held item usage statistics across all loaded teams."),
		mcplib.WithNumber("limit",
			mcplib.Description("Number of entries (default 20, max 100)"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetItemUsage}
}

func (s *Server) handleGetItemUsage(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	limit := clamp(intArg(req, "limit", 20), 1, 100)

	usage, total := query.ItemUsage(s.teams.Teams(), limit)
	result, err := resultJSON(map[string]any{
		"totalItems": total,
		"usage":      usage,
	})
	if err != nil {
		return resultErr(fmt.Errorf("get_item_usage: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_team_by_rental ───────────────────────────────────────────────────────

func (s *Server) toolGetTeamByRental() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_team_by_rental",
		mcplib.WithDescription("Look up the team behind a 6-character in-game rental code."),
		mcplib.WithString("rental_code",
			mcplib.Description(`6-character alphanumeric code (e.g. "ABC123")`),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetTeamByRental}
}

func (s *Server) handleGetTeamByRental(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	code, _ := stringArg(req, "rental_code")
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return resultText("Please provide a rental code."), nil
	}

	for _, team := range s.teams.Teams() {
		if team.RentalCode == code {
			return resultText(fmt.Sprintf("**Team with Rental Code: %s**\n\n%s", code, formatTeam(&team))), nil
		}
	}
	return resultText(fmt.Sprintf("No team found with rental code: %s", code)), nil
}

// ─── get_rental_teams ─────────────────────────────────────────────────────────

func (s *Server) toolGetRentalTeams() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_rental_teams",
		mcplib.WithDescription("Recent teams that have a rental code available, optionally filtered by Pokemon or regulation."),
		mcplib.WithString("pokemon",
			mcplib.Description("Require this Pokemon on the team"),
		),
		mcplib.WithString("regulation",
			mcplib.Description("Restrict to one regulation letter"),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Number of results (default 20, max 100)"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetRentalTeams}
}

func (s *Server) handleGetRentalTeams(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	pokemon, _ := stringArg(req, "pokemon")
	regulation, _ := stringArg(req, "regulation")
	limit := clamp(intArg(req, "limit", 20), 1, 100)

	pool := make([]models.Team, 0)
	for _, team := range s.teams.Teams() {
		if team.HasRentalCode() {
			pool = append(pool, team)
		}
	}
	if regulation != "" {
		pool = query.Search(pool, "", query.SearchOptions{Regulation: regulation}).Teams
	}
	if pokemon != "" {
		pool = query.TeamsWith(pool, pokemon, "")
	}

	result := query.Search(pool, "", query.SearchOptions{Limit: limit})
	if len(result.Teams) == 0 {
		if pokemon != "" {
			return resultText(fmt.Sprintf("No rental teams found with %s.", pokemon)), nil
		}
		return resultText("No rental teams found."), nil
	}
	text := fmt.Sprintf("**Rental Teams Available** (%d shown)\n\n%s", len(result.Teams), formatTeamList(result.Teams))
	return resultText(text), nil
}

// ─── get_tournament_teams ─────────────────────────────────────────────────────

func (s *Server) toolGetTournamentTeams() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_tournament_teams",
		mcplib.WithDescription(`Teams from a named tournament or event (e.g. "Worlds", "Regional").`),
		mcplib.WithString("event",
			mcplib.Description("Tournament or event name"),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Number of results (default 20, max 100)"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetTournamentTeams}
}

func (s *Server) handleGetTournamentTeams(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	event, _ := stringArg(req, "event")
	if event == "" {
		return resultText("Please provide a tournament or event name."), nil
	}
	limit := clamp(intArg(req, "limit", 20), 1, 100)

	eventNorm := query.Normalize(event)
	matched := make([]models.Team, 0)
	for _, team := range s.teams.Teams() {
		if strings.Contains(query.Normalize(team.Event), eventNorm) ||
			strings.Contains(query.Normalize(team.Description), eventNorm) {
			matched = append(matched, team)
		}
	}
	result := query.Search(matched, "", query.SearchOptions{Limit: limit})
	if len(result.Teams) == 0 {
		return resultText(fmt.Sprintf("No teams found from %q.", event)), nil
	}
	text := fmt.Sprintf("**Teams from %q** (%d shown)\n\n%s", event, len(result.Teams), formatTeamList(result.Teams))
	return resultText(text), nil
}

// ─── get_player_teams ─────────────────────────────────────────────────────────

func (s *Server) toolGetPlayerTeams() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_player_teams",
		mcplib.WithDescription("All teams submitted by a player, most recent first."),
		mcplib.WithString("player",
			mcplib.Description("Player name"),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Number of results (default 20, max 50)"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetPlayerTeams}
}

func (s *Server) handleGetPlayerTeams(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	player, _ := stringArg(req, "player")
	if player == "" {
		return resultText("Please provide a player name."), nil
	}
	limit := clamp(intArg(req, "limit", 20), 1, 50)

	playerNorm := query.Normalize(player)
	matched := make([]models.Team, 0)
	for _, team := range s.teams.Teams() {
		if strings.Contains(query.Normalize(team.Player), playerNorm) {
			matched = append(matched, team)
		}
	}
	result := query.Search(matched, "", query.SearchOptions{Limit: limit})
	if len(result.Teams) == 0 {
		return resultText(fmt.Sprintf("No teams found for player %q.", player)), nil
	}
	text := fmt.Sprintf("**Teams by %s** (%d shown)\n\n%s", player, len(result.Teams), formatTeamList(result.Teams))
	return resultText(text), nil
}

// ─── get_similar_teams ────────────────────────────────────────────────────────

func (s *Server) toolGetSimilarTeams() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_similar_teams",
		mcplib.WithDescription("Find teams sharing Pokemon with a given roster. Useful for exploring variations of a core."),
		mcplib.WithArray("pokemon",
			mcplib.Description("List of Pokemon names forming the target core"),
			mcplib.Required(),
			mcplib.WithStringItems(),
		),
		mcplib.WithNumber("min_shared",
			mcplib.Description("Minimum shared Pokemon to count as similar (default 3)"),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Number of results (default 10, max 50)"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetSimilarTeams}
}

func (s *Server) handleGetSimilarTeams(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	names := stringSliceArg(req, "pokemon")
	if len(names) == 0 {
		return resultText("Please provide a list of Pokemon names."), nil
	}
	minShared := intArg(req, "min_shared", 3)
	limit := clamp(intArg(req, "limit", 10), 1, 50)

	similar := query.SimilarTeams(s.teams.Teams(), names, minShared, limit)
	if len(similar) == 0 {
		return resultText(fmt.Sprintf("No teams share at least %d of those Pokemon.", minShared)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Similar Teams** (%d found, sharing >= %d Pokemon)\n\n", len(similar), minShared)
	for i := range similar {
		fmt.Fprintf(&b, "Shared: %d\n%s\n\n", similar[i].Shared, formatTeam(&similar[i].Team))
	}
	return resultText(b.String()), nil
}

// ─── recommend_teams ──────────────────────────────────────────────────────────

func (s *Server) toolRecommendTeams() mcpsrv.ServerTool {
	tool := mcplib.NewTool("recommend_teams",
		mcplib.WithDescription(`Recommend teams from a free-text description of what you want to play (e.g. "I want a rain team with Archaludon").`),
		mcplib.WithString("description",
			mcplib.Description("What kind of team you are looking for"),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Number of recommendations (default 5, max 20)"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleRecommendTeams}
}

func (s *Server) handleRecommendTeams(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	description, _ := stringArg(req, "description")
	if strings.TrimSpace(description) == "" {
		return resultErr(errors.New("recommend_teams: description is required")), nil
	}
	limit := clamp(intArg(req, "limit", 5), 1, 20)

	recs := query.Recommend(s.teams.Teams(), description, s.weights, time.Now(), limit)
	if len(recs) == 0 {
		return resultText("No matching teams found. Try naming specific Pokemon or an archetype (rain, trick room, ...)."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Recommended Teams** (%d)\n\n", len(recs))
	for i := range recs {
		fmt.Fprintf(&b, "Score %d (%s)\n%s\n\n", recs[i].Score, strings.Join(recs[i].Reasons, ", "), formatTeam(&recs[i].Team))
	}
	return resultText(b.String()), nil
}

func clamp(v, lo, hi int) int {
	return max(min(v, hi), lo)
}
