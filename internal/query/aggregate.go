package query

import (
	"math"
	"sort"
	"strings"

	"github.com/vgcpastes/team-finder/internal/models"
)

// counter counts distinct values while remembering first-encounter order so
// that ties sort deterministically.
type counter struct {
	counts map[string]int
	order  map[string]int
	next   int
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}, order: map[string]int{}}
}

func (c *counter) add(name string) {
	if _, seen := c.counts[name]; !seen {
		c.order[name] = c.next
		c.next++
	}
	c.counts[name]++
}

// entries returns the counted values sorted by count descending, ties broken
// by first-encountered order. Percentages are computed against denominator.
func (c *counter) entries(denominator, limit int) []models.UsageEntry {
	out := make([]models.UsageEntry, 0, len(c.counts))
	for name, count := range c.counts {
		out = append(out, models.UsageEntry{
			Name:       name,
			Count:      count,
			Percentage: Percentage(count, denominator),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return c.order[out[i].Name] < c.order[out[j].Name]
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Percentage is count/total*100 rounded to one decimal; 0 when total is 0.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// PokemonUsage counts how many teams in the pool run each Pokemon.
// Percentages are against the pool size.
func PokemonUsage(pool []models.Team, limit int) []models.UsageEntry {
	c := newCounter()
	for _, team := range pool {
		for _, p := range team.Pokemon {
			if name := strings.TrimSpace(p.Name); name != "" {
				c.add(name)
			}
		}
	}
	return c.entries(len(pool), limit)
}

// ItemUsage counts held items across the pool, excluding the None/Unknown
// placeholders. Percentages are against the total counted items, and the
// total is returned alongside the entries.
func ItemUsage(pool []models.Team, limit int) ([]models.UsageEntry, int) {
	c := newCounter()
	total := 0
	for _, team := range pool {
		for _, p := range team.Pokemon {
			item := strings.TrimSpace(p.Item)
			if item == "" || item == "None" || item == "Unknown" {
				continue
			}
			c.add(item)
			total++
		}
	}
	return c.entries(total, limit), total
}

// ItemsFor counts the items held by a specific Pokemon (normalized substring
// match) across the pool. The denominator is the number of counted
// occurrences, not the pool size.
func ItemsFor(pool []models.Team, pokemon string) ([]models.UsageEntry, int) {
	target := Normalize(ExpandPokemon(pokemon))
	c := newCounter()
	total := 0
	for _, team := range pool {
		for _, p := range team.Pokemon {
			if !strings.Contains(Normalize(p.Name), target) {
				continue
			}
			item := strings.TrimSpace(p.Item)
			if item == "" || item == "None" || item == "Unknown" {
				continue
			}
			c.add(item)
			total++
		}
	}
	return c.entries(total, 0), total
}

// Teammates counts the Pokemon that co-occur with the given one. The
// percentage denominator is the number of teams containing the target, which
// is returned alongside the entries.
func Teammates(pool []models.Team, pokemon string, limit int) ([]models.UsageEntry, int) {
	target := Normalize(ExpandPokemon(pokemon))

	withTarget := make([]models.Team, 0)
	for _, team := range pool {
		for _, p := range team.Pokemon {
			if strings.Contains(Normalize(p.Name), target) {
				withTarget = append(withTarget, team)
				break
			}
		}
	}
	if len(withTarget) == 0 {
		return nil, 0
	}

	c := newCounter()
	for _, team := range withTarget {
		for _, p := range team.Pokemon {
			name := strings.TrimSpace(p.Name)
			if name == "" || strings.Contains(Normalize(name), target) {
				continue
			}
			c.add(name)
		}
	}
	return c.entries(len(withTarget), limit), len(withTarget)
}

// TeamsWith returns the teams whose roster contains a normalized match of
// the Pokemon name, optionally requiring it to hold a specific item.
func TeamsWith(pool []models.Team, pokemon, item string) []models.Team {
	nameNorm := Normalize(ExpandPokemon(pokemon))
	itemNorm := ""
	if item != "" {
		itemNorm = Normalize(ExpandItem(item))
	}

	out := make([]models.Team, 0)
	for _, team := range pool {
		for _, p := range team.Pokemon {
			if !strings.Contains(Normalize(p.Name), nameNorm) {
				continue
			}
			if itemNorm != "" && !strings.Contains(Normalize(p.Item), itemNorm) {
				continue
			}
			out = append(out, team)
			break
		}
	}
	return out
}
