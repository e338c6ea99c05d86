package services

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	pokemonDBSpriteBase = "https://img.pokemondb.net/sprites/home/normal"
	showdownSpriteBase  = "https://play.pokemonshowdown.com/sprites/ani"
	showdownGen5Base    = "https://play.pokemonshowdown.com/sprites/gen5ani"
	itemSpriteBase      = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/items"
)

// showdownNames maps display names to Pokemon Showdown sprite slugs for
// Pokemon whose slug cannot be derived mechanically (paradox Pokemon,
// treasures of ruin, regional and gender forms).
var showdownNames = map[string]string{
	"gouging fire":  "gougingfire",
	"raging bolt":   "ragingbolt",
	"iron hands":    "ironhands",
	"iron bundle":   "ironbundle",
	"iron boulder":  "ironboulder",
	"iron crown":    "ironcrown",
	"iron moth":     "ironmoth",
	"iron thorns":   "ironthorns",
	"iron treads":   "irontreads",
	"iron valiant":  "ironvaliant",
	"iron jugulis":  "ironjugulis",
	"flutter mane":  "fluttermane",
	"slither wing":  "slitherwing",
	"sandy shocks":  "sandyshocks",
	"roaring moon":  "roaringmoon",
	"great tusk":    "greattusk",
	"scream tail":   "screamtail",
	"brute bonnet":  "brutebonnet",
	"walking wake":  "walkingwake",
	"chien-pao":     "chienpao",
	"chi-yu":        "chiyu",
	"ting-lu":       "tinglu",
	"wo-chien":      "wochien",

	"urshifu-rapid-strike":  "urshifu-rapidstrike",
	"urshifu-single-strike": "urshifu",
	"urshifu rapid strike":  "urshifu-rapidstrike",
	"urshifu single strike": "urshifu",
	"bloodmoon ursaluna":    "ursaluna-bloodmoon",
	"ursaluna bloodmoon":    "ursaluna-bloodmoon",

	"landorus-incarnate":  "landorus",
	"tornadus-incarnate":  "tornadus",
	"thundurus-incarnate": "thundurus",

	"indeedee-female":  "indeedee-f",
	"indeedee-male":    "indeedee",
	"indeedee-m":       "indeedee",
	"meowstic-m":       "meowstic",
	"basculegion-m":    "basculegion",

	"mr. mime":   "mrmime",
	"mr. rime":   "mrrime",
	"mime jr.":   "mimejr",
	"type: null": "typenull",
	"ho-oh":      "hooh",
	"porygon-z":  "porygonz",
	"nidoran-f":  "nidoranf",
	"nidoran-m":  "nidoranm",
	"farfetch'd": "farfetchd",
	"sirfetch'd": "sirfetchd",
}

var (
	ogerponMaskSuffix = regexp.MustCompile(`-mask$`)
	trailingFemale    = regexp.MustCompile(`-f$`)
	trailingMale      = regexp.MustCompile(`-m$`)
)

// SpriteService derives sprite URLs from Pokemon display names. The
// derivation is a pure string transform; an LRU cache sits in front because
// the same few hundred names repeat across every refresh.
type SpriteService struct {
	cache *lru.Cache[string, string]
}

func NewSpriteService() *SpriteService {
	cache, err := lru.New[string, string](1024)
	if err != nil {
		slog.Warn("sprite cache disabled", "error", err)
	}
	return &SpriteService{cache: cache}
}

// SpriteURL returns the PokemonDB home sprite for a Pokemon name, or "" for
// an empty name.
func (s *SpriteService) SpriteURL(name string) string {
	if name == "" {
		return ""
	}
	if s.cache != nil {
		if url, ok := s.cache.Get(name); ok {
			return url
		}
	}
	url := fmt.Sprintf("%s/%s.png", pokemonDBSpriteBase, pokemonDBSlug(name))
	if s.cache != nil {
		s.cache.Add(name, url)
	}
	return url
}

// AnimatedSpriteURL returns the Pokemon Showdown animated sprite for a name.
func (s *SpriteService) AnimatedSpriteURL(name string) string {
	return fmt.Sprintf("%s/%s.gif", showdownSpriteBase, ShowdownName(name))
}

// Gen5SpriteURL is the fallback animated sprite used when the primary set
// lacks the Pokemon.
func (s *SpriteService) Gen5SpriteURL(name string) string {
	return fmt.Sprintf("%s/%s.gif", showdownGen5Base, ShowdownName(name))
}

// ItemSpriteURL returns the PokeAPI sprite for a held item, or "" for
// placeholder values.
func (s *SpriteService) ItemSpriteURL(item string) string {
	if item == "" || item == "Unknown" || item == "None" {
		return ""
	}
	slug := strings.ToLower(item)
	slug = strings.NewReplacer("'", "", "’", "", ".", "").Replace(slug)
	slug = strings.Join(strings.Fields(slug), "-")
	return fmt.Sprintf("%s/%s.png", itemSpriteBase, slug)
}

// ShowdownName converts a Pokemon display name to its Showdown sprite slug.
func ShowdownName(name string) string {
	if name == "" {
		return "substitute"
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	if slug, ok := showdownNames[lower]; ok {
		return slug
	}
	slug := strings.NewReplacer("'", "", "’", "", ".", "", ":", "").Replace(lower)
	slug = strings.ReplaceAll(slug, "♀", "-f")
	slug = strings.ReplaceAll(slug, "♂", "-m")
	slug = strings.Join(strings.Fields(slug), "")
	return slug
}

// pokemonDBSlug converts a display name to the PokemonDB URL slug.
// PokemonDB spells out regional and gender form suffixes.
func pokemonDBSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	slug = strings.NewReplacer("'", "", "’", "", ".", "", ":", "").Replace(slug)

	slug = strings.ReplaceAll(slug, "♀", "-female")
	slug = strings.ReplaceAll(slug, "♂", "-male")
	slug = trailingFemale.ReplaceAllString(slug, "-female")
	slug = trailingMale.ReplaceAllString(slug, "-male")

	for suffix, replacement := range map[string]string{
		"-galar":  "-galarian",
		"-hisui":  "-hisuian",
		"-alola":  "-alolan",
		"-paldea": "-paldean",
	} {
		if strings.HasSuffix(slug, suffix) {
			slug = strings.TrimSuffix(slug, suffix) + replacement
		}
	}

	// Ogerpon mask forms drop the -mask suffix on PokemonDB.
	slug = ogerponMaskSuffix.ReplaceAllString(slug, "")

	return slug
}
