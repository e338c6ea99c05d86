package query

import (
	"testing"

	"github.com/vgcpastes/team-finder/internal/models"
)

// fixtureTeam builds a team with the given roster. Items default to Unknown.
func fixtureTeam(id, player, description, regulation, rank string, dateValue int64, names ...string) models.Team {
	slots := make([]models.Slot, 0, len(names))
	for _, n := range names {
		slots = append(slots, models.Slot{Name: n, Item: "Unknown"})
	}
	return models.Team{
		TeamID:      id,
		Player:      player,
		Description: description,
		Regulation:  regulation,
		Rank:        rank,
		DateValue:   dateValue,
		Pokemon:     slots,
	}
}

func searchPool() []models.Team {
	return []models.Team{
		fixtureTeam("F1", "Alice", "Rain balance", "H", "1st", 300,
			"Pelipper", "Archaludon", "Incineroar", "Rillaboom", "Flutter Mane", "Urshifu-Rapid-Strike"),
		fixtureTeam("F2", "Bob", "Trick room", "H", "Top 8", 200,
			"Torkoal", "Indeedee-Female", "Farigiraf", "Ursaluna", "Incineroar", "Amoonguss"),
		fixtureTeam("G1", "Carol", "Hyper offense", "G", "Top 16", 100,
			"Flutter Mane", "Chien-Pao", "Iron Bundle", "Landorus-Therian", "Chi-Yu", "Tornadus"),
	}
}

func teamIDs(teams []models.Team) []string {
	ids := make([]string, len(teams))
	for i, t := range teams {
		ids[i] = t.TeamID
	}
	return ids
}

func TestSearchSingleTerm(t *testing.T) {
	res := Search(searchPool(), "pelipper", SearchOptions{})
	if res.Total != 1 || len(res.Teams) != 1 || res.Teams[0].TeamID != "F1" {
		t.Fatalf("got total=%d ids=%v, want just F1", res.Total, teamIDs(res.Teams))
	}
}

func TestSearchMultiTerm(t *testing.T) {
	// Both terms must match; only F1 has both Pokemon.
	res := Search(searchPool(), "Incineroar and Flutter Mane", SearchOptions{})
	if res.Total != 1 || res.Teams[0].TeamID != "F1" {
		t.Fatalf("got total=%d ids=%v, want just F1", res.Total, teamIDs(res.Teams))
	}
}

func TestSearchAbbreviations(t *testing.T) {
	res := Search(searchPool(), "incin and flutter", SearchOptions{})
	if res.Total != 1 || res.Teams[0].TeamID != "F1" {
		t.Fatalf("got total=%d ids=%v, want just F1", res.Total, teamIDs(res.Teams))
	}
}

func TestSearchHyphenInsensitive(t *testing.T) {
	res := Search(searchPool(), "urshifu rapid strike", SearchOptions{})
	if res.Total != 1 || res.Teams[0].TeamID != "F1" {
		t.Fatalf("got total=%d ids=%v, want just F1", res.Total, teamIDs(res.Teams))
	}
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	res := Search(searchPool(), "", SearchOptions{})
	if res.Total != 3 {
		t.Fatalf("got total=%d, want 3", res.Total)
	}
}

func TestSearchSortOrder(t *testing.T) {
	recent := Search(searchPool(), "flutter mane", SearchOptions{Sort: SortRecent})
	if got := teamIDs(recent.Teams); got[0] != "F1" || got[1] != "G1" {
		t.Errorf("recent order = %v, want [F1 G1]", got)
	}

	oldest := Search(searchPool(), "flutter mane", SearchOptions{Sort: SortOldest})
	if got := teamIDs(oldest.Teams); got[0] != "G1" || got[1] != "F1" {
		t.Errorf("oldest order = %v, want [G1 F1]", got)
	}
}

func TestSearchLimitKeepsTotal(t *testing.T) {
	res := Search(searchPool(), "incineroar", SearchOptions{Limit: 1})
	if res.Total != 2 {
		t.Errorf("total = %d, want 2", res.Total)
	}
	if len(res.Teams) != 1 {
		t.Errorf("len(teams) = %d, want 1", len(res.Teams))
	}
}

func TestSearchRegulationFilter(t *testing.T) {
	res := Search(searchPool(), "flutter mane", SearchOptions{Regulation: "g"})
	if res.Total != 1 || res.Teams[0].TeamID != "G1" {
		t.Fatalf("got total=%d ids=%v, want just G1", res.Total, teamIDs(res.Teams))
	}
}

func TestSearchMinPlacement(t *testing.T) {
	res := Search(searchPool(), "", SearchOptions{MinPlacement: 8})
	got := teamIDs(res.Teams)
	if res.Total != 2 || got[0] != "F1" || got[1] != "F2" {
		t.Fatalf("got total=%d ids=%v, want [F1 F2]", res.Total, got)
	}
}

func TestSearchRegulationShorthandTerm(t *testing.T) {
	res := Search(searchPool(), "reg g", SearchOptions{})
	if res.Total != 1 || res.Teams[0].TeamID != "G1" {
		t.Fatalf("got total=%d ids=%v, want just G1", res.Total, teamIDs(res.Teams))
	}
}

func TestSplitTerms(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"incineroar", []string{"incineroar"}},
		{"Incineroar and Flutter Mane", []string{"incineroar", "flutter mane"}},
		{"incin and av", []string{"incineroar", "assault vest"}},
		{"and and and", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := SplitTerms(tt.query)
		if len(got) != len(tt.want) {
			t.Errorf("SplitTerms(%q) = %v, want %v", tt.query, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("SplitTerms(%q)[%d] = %q, want %q", tt.query, i, got[i], tt.want[i])
			}
		}
	}
}
