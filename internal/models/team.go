package models

import (
	"regexp"
	"strings"
)

// Slot is a single Pokemon on a team: its name, held item and the derived
// sprite URL.
type Slot struct {
	Name   string `json:"name"`
	Item   string `json:"item"`
	Sprite string `json:"sprite"`
}

// Team is one roster row from the VGCPastes spreadsheet.
type Team struct {
	TeamID      string `json:"teamId"`
	Description string `json:"description"`
	Player      string `json:"player"`
	Pokemon     []Slot `json:"pokemon"`
	Pokepaste   string `json:"pokepaste"`
	RentalCode  string `json:"rentalCode"`
	Date        string `json:"date"`
	DateValue   int64  `json:"dateValue"` // epoch ms, 0 when the date failed to parse
	Event       string `json:"event"`
	Rank        string `json:"rank"`
	SourceLink  string `json:"sourceLink"`
	VideoLink   string `json:"videoLink"`
	Regulation  string `json:"regulation"`
	Format      string `json:"format"`
}

// HasRentalCode reports whether the team carries a usable rental code.
func (t *Team) HasRentalCode() bool {
	return t.RentalCode != ""
}

var (
	teamIDPattern     = regexp.MustCompile(`^[A-Za-z]\d+$`)
	rentalCodePattern = regexp.MustCompile(`^[A-Za-z0-9]{6}$`)
)

// ValidTeamID reports whether id matches the spreadsheet's row id format
// (one letter followed by digits, e.g. "F123").
func ValidTeamID(id string) bool {
	return teamIDPattern.MatchString(id)
}

// CleanRentalCode uppercases a 6-character alphanumeric rental code.
// Anything else (including "None" placeholders) is coerced to "".
func CleanRentalCode(code string) string {
	code = strings.TrimSpace(code)
	if !rentalCodePattern.MatchString(code) {
		return ""
	}
	return strings.ToUpper(code)
}

// UsageEntry is one row of an aggregation result (Pokemon usage, item usage,
// teammate counts). Percentage is count/poolSize*100 rounded to one decimal.
type UsageEntry struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// RegulationCount is the number of teams loaded for one regulation.
type RegulationCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SearchResult carries the teams matching a search along with the
// pre-truncation total.
type SearchResult struct {
	Total int    `json:"total"`
	Teams []Team `json:"teams"`
}

// SimilarTeam is a candidate from a similarity query with the number of
// shared Pokemon.
type SimilarTeam struct {
	Team   Team `json:"team"`
	Shared int  `json:"shared"`
}

// Recommendation is a scored team with the reasons it matched.
type Recommendation struct {
	Team    Team     `json:"team"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}
