// Package config centralises environment configuration for the team finder.
// A .env file is honoured in development; real environment variables win.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Regulation names one spreadsheet tab and the single-letter label its teams
// are tagged with.
type Regulation struct {
	Name  string
	Sheet string
}

// ColumnSchema maps the fixed VGCPastes column layout. The offsets are
// data-source specific and have changed between spreadsheet revisions, so
// they live here rather than inline in the normalizer.
type ColumnSchema struct {
	HeaderRows  int
	TeamID      int
	Description int
	Player      int
	Items       []int
	Pokepaste   int
	RentalCode  int
	Date        int
	Event       int
	Rank        int
	SourceLink  int
	VideoLink   int
	Pokemon     []int
}

// RecommendWeights are the heuristic scores used by the recommendation
// engine. They are configuration, not behaviour to hard-code.
type RecommendWeights struct {
	MentionedPokemon int // Pokemon named in the request is on the team
	ArchetypeKeyword int // archetype keyword appears in the team description
	ArchetypePokemon int // archetype indicator Pokemon is on the team
	RentalCode       int // team has a usable rental code
	RecentWithin     time.Duration
	RecentBonus      int
}

type Config struct {
	Port        string
	Environment string

	SpreadsheetID   string
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
	Regulations     []Regulation
	Columns         ColumnSchema

	RateLimitPerMin int
	RateLimitBurst  int

	MCPTransport string // "http" (mounted on the API server) or "stdio"

	Recommend RecommendWeights
}

// DefaultColumns is the current VGCPastes sheet layout.
var DefaultColumns = ColumnSchema{
	HeaderRows:  3,
	TeamID:      0,
	Description: 1,
	Player:      3,
	Items:       []int{7, 10, 13, 16, 19, 22},
	Pokepaste:   24,
	RentalCode:  28,
	Date:        29,
	Event:       30,
	Rank:        31,
	SourceLink:  32,
	VideoLink:   33,
	Pokemon:     []int{37, 38, 39, 40, 41, 42},
}

// DefaultRegulations lists the spreadsheet tabs fetched on each refresh,
// newest regulation first.
var DefaultRegulations = []Regulation{
	{Name: "J", Sheet: "SV Regulation J"},
	{Name: "I", Sheet: "SV Regulation I"},
	{Name: "H", Sheet: "SV Regulation H"},
	{Name: "G", Sheet: "SV Regulation G"},
	{Name: "F", Sheet: "SV Regulation F"},
	{Name: "E", Sheet: "SV Regulation E"},
	{Name: "D", Sheet: "SV Regulation D"},
	{Name: "C", Sheet: "SV Regulation C"},
}

// Load reads configuration from the environment. Missing values fall back to
// production defaults; Load never fails on absent variables.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        envString("PORT", "8080"),
		Environment: envString("APP_ENV", "development"),

		SpreadsheetID:   envString("SPREADSHEET_ID", "1axlwmzPA49rYkqXh7zHvAtSP-TKbM0ijGYBPRflLSWw"),
		RefreshInterval: envDuration("REFRESH_INTERVAL", time.Hour),
		FetchTimeout:    envDuration("FETCH_TIMEOUT", 30*time.Second),
		Regulations:     DefaultRegulations,
		Columns:         DefaultColumns,

		RateLimitPerMin: envInt("RATE_LIMIT_PER_MIN", 100),
		RateLimitBurst:  envInt("RATE_LIMIT_BURST", 25),

		MCPTransport: envString("MCP_TRANSPORT", "http"),

		Recommend: RecommendWeights{
			MentionedPokemon: envInt("RECOMMEND_WEIGHT_POKEMON", 10),
			ArchetypeKeyword: envInt("RECOMMEND_WEIGHT_KEYWORD", 5),
			ArchetypePokemon: envInt("RECOMMEND_WEIGHT_INDICATOR", 3),
			RentalCode:       envInt("RECOMMEND_WEIGHT_RENTAL", 2),
			RecentWithin:     30 * 24 * time.Hour,
			RecentBonus:      envInt("RECOMMEND_WEIGHT_RECENT", 1),
		},
	}
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
