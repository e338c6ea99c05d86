package query

import (
	"sort"
	"strings"

	"github.com/vgcpastes/team-finder/internal/models"
)

// SimilarTeams finds teams sharing Pokemon with the target roster. A target
// name counts as shared when it matches a candidate slot in either direction
// (candidate name contains target or target contains candidate name, both
// normalized). Candidates with fewer than minShared matches are dropped;
// results sort by shared count descending, then by date descending.
func SimilarTeams(pool []models.Team, targetNames []string, minShared, limit int) []models.SimilarTeam {
	if minShared <= 0 {
		minShared = 1
	}

	targets := make([]string, 0, len(targetNames))
	for _, name := range targetNames {
		if norm := Normalize(ExpandPokemon(name)); norm != "" {
			targets = append(targets, norm)
		}
	}
	if len(targets) == 0 {
		return nil
	}

	out := make([]models.SimilarTeam, 0)
	for _, team := range pool {
		shared := sharedCount(&team, targets)
		if shared >= minShared {
			out = append(out, models.SimilarTeam{Team: team, Shared: shared})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Shared != out[j].Shared {
			return out[i].Shared > out[j].Shared
		}
		return out[i].Team.DateValue > out[j].Team.DateValue
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sharedCount(team *models.Team, targets []string) int {
	shared := 0
	for _, target := range targets {
		for _, p := range team.Pokemon {
			name := Normalize(p.Name)
			if name == "" {
				continue
			}
			if strings.Contains(name, target) || strings.Contains(target, name) {
				shared++
				break
			}
		}
	}
	return shared
}
