package query

import (
	"sort"
	"strings"

	"github.com/vgcpastes/team-finder/internal/models"
)

// Sort orders for search results.
const (
	SortRecent = "recent"
	SortOldest = "oldest"
)

// SearchOptions narrow and order a search. Zero values mean "no filter".
type SearchOptions struct {
	Regulation   string // single-letter label, exact match
	MinPlacement int    // keep teams with PlacementTier <= MinPlacement
	Sort         string // SortRecent (default) or SortOldest
	Limit        int    // post-sort truncation; <=0 means no limit
}

// Search runs a multi-term query over the pool. The query is split on the
// literal word "and"; a team matches only if every term matches. Each term is
// abbreviation-expanded first and then matched against the raw text blob, the
// normalized blob, any individual Pokemon name, or a regulation shorthand
// ("g", "reg g"). Results are stably sorted by DateValue and truncated to
// Limit; Total reports the pre-truncation count.
func Search(pool []models.Team, rawQuery string, opts SearchOptions) models.SearchResult {
	terms := SplitTerms(rawQuery)

	candidates := filterPool(pool, opts)

	matched := make([]models.Team, 0, len(candidates))
	for _, team := range candidates {
		if teamMatches(&team, terms) {
			matched = append(matched, team)
		}
	}

	sortByDate(matched, opts.Sort)

	total := len(matched)
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return models.SearchResult{Total: total, Teams: matched}
}

// SplitTerms breaks a query on the literal separator "and", lowercasing and
// expanding each term.
func SplitTerms(rawQuery string) []string {
	parts := strings.Fields(strings.ToLower(rawQuery))

	var terms []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			terms = append(terms, strings.Join(current, " "))
			current = nil
		}
	}
	for _, word := range parts {
		if word == "and" {
			flush()
			continue
		}
		current = append(current, word)
	}
	flush()

	for i, term := range terms {
		expanded := ExpandPokemon(term)
		if expanded == term {
			expanded = ExpandItem(term)
		}
		terms[i] = strings.ToLower(expanded)
	}
	return terms
}

// filterPool applies the regulation and placement pre-filters.
func filterPool(pool []models.Team, opts SearchOptions) []models.Team {
	if opts.Regulation == "" && opts.MinPlacement <= 0 {
		return pool
	}
	reg := strings.ToUpper(opts.Regulation)
	out := make([]models.Team, 0, len(pool))
	for _, team := range pool {
		if reg != "" && team.Regulation != reg {
			continue
		}
		if opts.MinPlacement > 0 && PlacementTier(team.Rank) > opts.MinPlacement {
			continue
		}
		out = append(out, team)
	}
	return out
}

func teamMatches(team *models.Team, terms []string) bool {
	if len(terms) == 0 {
		return true
	}

	fields := []string{
		strings.ToLower(team.Player),
		strings.ToLower(team.Event),
		strings.ToLower(team.Description),
		strings.ToLower(team.Format),
	}
	pokemonNorm := make([]string, 0, len(team.Pokemon))
	for _, p := range team.Pokemon {
		fields = append(fields, strings.ToLower(p.Name), strings.ToLower(p.Item))
		pokemonNorm = append(pokemonNorm, Normalize(p.Name))
	}
	blob := strings.Join(fields, " ")
	blobNorm := Normalize(blob)

	for _, term := range terms {
		if !termMatches(team, term, blob, blobNorm, pokemonNorm) {
			return false
		}
	}
	return true
}

func termMatches(team *models.Team, term, blob, blobNorm string, pokemonNorm []string) bool {
	if strings.Contains(blob, term) {
		return true
	}
	termNorm := Normalize(term)
	if termNorm != "" && strings.Contains(blobNorm, termNorm) {
		return true
	}
	for _, name := range pokemonNorm {
		if termNorm != "" && strings.Contains(name, termNorm) {
			return true
		}
	}
	// Regulation shorthand: a single letter, or "reg X".
	if strings.HasPrefix(term, "reg") || len(term) == 1 {
		letter := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(term, "reg")))
		if letter != "" && team.Regulation == letter {
			return true
		}
	}
	return false
}

// sortByDate stably sorts teams by DateValue; ties keep collection order.
func sortByDate(teams []models.Team, order string) {
	if order == SortOldest {
		sort.SliceStable(teams, func(i, j int) bool {
			return teams[i].DateValue < teams[j].DateValue
		})
		return
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].DateValue > teams[j].DateValue
	})
}
