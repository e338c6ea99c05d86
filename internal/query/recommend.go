package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vgcpastes/team-finder/internal/config"
	"github.com/vgcpastes/team-finder/internal/models"
)

// archetype is a named playstyle detected in free-text requests. Keywords
// are matched as substrings of the request; indicators are Pokemon whose
// presence on a team suggests the archetype.
type archetype struct {
	name       string
	keywords   []string
	indicators []string
}

var archetypes = []archetype{
	{
		name:       "rain",
		keywords:   []string{"rain", "drizzle"},
		indicators: []string{"Pelipper", "Politoed", "Archaludon", "Basculegion", "Kingdra"},
	},
	{
		name:       "sun",
		keywords:   []string{"sun", "drought"},
		indicators: []string{"Torkoal", "Lilligant", "Walking Wake", "Scovillain"},
	},
	{
		name:       "trick room",
		keywords:   []string{"trick room", "trickroom"},
		indicators: []string{"Indeedee", "Armarouge", "Hatterene", "Farigiraf", "Ursaluna", "Torkoal"},
	},
	{
		name:       "sand",
		keywords:   []string{"sand", "sandstorm"},
		indicators: []string{"Tyranitar", "Excadrill", "Hippowdon"},
	},
	{
		name:       "snow",
		keywords:   []string{"snow", "hail"},
		indicators: []string{"Abomasnow", "Ninetales-Alola", "Baxcalibur"},
	},
	{
		name:       "tailwind",
		keywords:   []string{"tailwind"},
		indicators: []string{"Tornadus", "Whimsicott", "Talonflame", "Murkrow"},
	},
	{
		name:       "hyper offense",
		keywords:   []string{"hyper offense", "aggressive", "offense"},
		indicators: []string{"Flutter Mane", "Chien-Pao", "Chi-Yu", "Iron Bundle"},
	},
}

// Recommend scores every team in the pool against a free-text description of
// what the caller wants. Pokemon named in the description, detected archetype
// keywords and indicator Pokemon, rental availability and freshness all add
// weight; teams scoring zero are excluded.
func Recommend(pool []models.Team, description string, weights config.RecommendWeights, now time.Time, topN int) []models.Recommendation {
	mentioned := mentionedPokemon(description, pool)
	wanted := detectArchetypes(description)
	recentCutoff := now.Add(-weights.RecentWithin).UnixMilli()

	out := make([]models.Recommendation, 0)
	for _, team := range pool {
		score := 0
		var reasons []string
		seen := map[string]bool{}

		for _, name := range mentioned {
			if teamHasPokemon(&team, name) {
				reason := "has " + name
				if !seen[reason] {
					seen[reason] = true
					score += weights.MentionedPokemon
					reasons = append(reasons, reason)
				}
			}
		}

		desc := strings.ToLower(team.Description)
		for _, arch := range wanted {
			for _, kw := range arch.keywords {
				if strings.Contains(desc, kw) {
					reason := arch.name + " team"
					if !seen[reason] {
						seen[reason] = true
						score += weights.ArchetypeKeyword
						reasons = append(reasons, reason)
					}
					break
				}
			}
			for _, indicator := range arch.indicators {
				if teamHasPokemon(&team, indicator) {
					reason := fmt.Sprintf("runs %s (%s)", indicator, arch.name)
					if !seen[reason] {
						seen[reason] = true
						score += weights.ArchetypePokemon
						reasons = append(reasons, reason)
					}
				}
			}
		}

		// Rental and freshness are tiebreak bonuses, not relevance on
		// their own.
		if score > 0 {
			if team.HasRentalCode() {
				score += weights.RentalCode
				reasons = append(reasons, "rental code available")
			}
			if team.DateValue > 0 && team.DateValue >= recentCutoff {
				score += weights.RecentBonus
				reasons = append(reasons, "recent team")
			}
		}

		if score > 0 {
			out = append(out, models.Recommendation{Team: team, Score: score, Reasons: reasons})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Team.DateValue > out[j].Team.DateValue
	})

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// mentionedPokemon finds Pokemon names the description mentions as whole
// words: every distinct name in the pool is checked against the description,
// and shorthand tokens are expanded through the abbreviation dictionary.
func mentionedPokemon(description string, pool []models.Team) []string {
	padded := " " + strings.Join(words(description), " ") + " "

	var mentioned []string
	seen := map[string]bool{}
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			mentioned = append(mentioned, name)
		}
	}

	for _, team := range pool {
		for _, p := range team.Pokemon {
			name := strings.TrimSpace(p.Name)
			if name == "" || seen[name] {
				continue
			}
			needle := " " + strings.Join(words(name), " ") + " "
			if strings.Contains(padded, needle) {
				add(name)
			}
		}
	}

	for _, token := range words(description) {
		if expanded := ExpandPokemon(token); expanded != token {
			add(expanded)
		}
	}
	return mentioned
}

// detectArchetypes returns the archetypes whose keywords appear as
// substrings of the description.
func detectArchetypes(description string) []archetype {
	desc := strings.ToLower(description)
	var out []archetype
	for _, arch := range archetypes {
		for _, kw := range arch.keywords {
			if strings.Contains(desc, kw) {
				out = append(out, arch)
				break
			}
		}
	}
	return out
}

func teamHasPokemon(team *models.Team, name string) bool {
	target := Normalize(name)
	if target == "" {
		return false
	}
	for _, p := range team.Pokemon {
		if strings.Contains(Normalize(p.Name), target) {
			return true
		}
	}
	return false
}

// words lowercases s and splits it on anything that is not a letter, digit
// or apostrophe, so that punctuation never defeats a whole-word match.
func words(s string) []string {
	s = strings.ToLower(s)
	return strings.FieldsFunc(s, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '\'':
			return false
		}
		return true
	})
}
