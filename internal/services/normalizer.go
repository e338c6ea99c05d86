package services

import (
	"encoding/csv"
	"strings"
	"time"

	"github.com/vgcpastes/team-finder/internal/config"
	"github.com/vgcpastes/team-finder/internal/models"
)

// slotPlaceholder marks an unused Pokemon column in the sheet.
const slotPlaceholder = "-"

// dateLayouts are tried in order when parsing the free-text date column.
var dateLayouts = []string{
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2 2006",
}

// Normalizer turns raw sheet CSV into Team records. It is total: malformed
// rows are filtered, never errored.
type Normalizer struct {
	columns config.ColumnSchema
	sprites *SpriteService
}

func NewNormalizer(columns config.ColumnSchema, sprites *SpriteService) *Normalizer {
	return &Normalizer{columns: columns, sprites: sprites}
}

// ParseSheet parses one sheet's CSV text into teams tagged with the given
// regulation label. Rows with a malformed team id, and rows with neither a
// player name nor any Pokemon, are dropped.
func (n *Normalizer) ParseSheet(csvText, regulation string) []models.Team {
	reader := csv.NewReader(strings.NewReader(csvText))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		// encoding/csv only fails here on unrecoverable quoting damage;
		// treat the sheet as empty rather than aborting the refresh.
		return nil
	}

	if len(rows) <= n.columns.HeaderRows {
		return nil
	}
	rows = rows[n.columns.HeaderRows:]

	teams := make([]models.Team, 0, len(rows))
	for _, row := range rows {
		if team, ok := n.parseRow(row, regulation); ok {
			teams = append(teams, team)
		}
	}
	return teams
}

func (n *Normalizer) parseRow(row []string, regulation string) (models.Team, bool) {
	teamID := cell(row, n.columns.TeamID)
	if teamID == "" || strings.EqualFold(teamID, "team id") || !models.ValidTeamID(teamID) {
		return models.Team{}, false
	}

	player := cell(row, n.columns.Player)
	pokemon := n.parseSlots(row)
	if len(pokemon) == 0 && player == "" {
		return models.Team{}, false
	}

	date := cell(row, n.columns.Date)

	return models.Team{
		TeamID:      teamID,
		Description: cell(row, n.columns.Description),
		Player:      player,
		Pokemon:     pokemon,
		Pokepaste:   normalizePokepaste(cell(row, n.columns.Pokepaste)),
		RentalCode:  models.CleanRentalCode(cell(row, n.columns.RentalCode)),
		Date:        date,
		DateValue:   parseDateValue(date),
		Event:       cell(row, n.columns.Event),
		Rank:        cell(row, n.columns.Rank),
		SourceLink:  cell(row, n.columns.SourceLink),
		VideoLink:   cell(row, n.columns.VideoLink),
		Regulation:  regulation,
		Format:      "Regulation " + regulation,
	}, true
}

// parseSlots zips the fixed Pokemon-name and item columns positionally,
// dropping empty and placeholder slots.
func (n *Normalizer) parseSlots(row []string) []models.Slot {
	slots := make([]models.Slot, 0, len(n.columns.Pokemon))
	for i, col := range n.columns.Pokemon {
		name := cell(row, col)
		if name == "" || name == slotPlaceholder {
			continue
		}
		item := "Unknown"
		if i < len(n.columns.Items) {
			if v := cell(row, n.columns.Items[i]); v != "" {
				item = v
			}
		}
		slots = append(slots, models.Slot{
			Name:   name,
			Item:   item,
			Sprite: n.sprites.SpriteURL(name),
		})
	}
	return slots
}

// cell returns the trimmed value of column i, or "" for out-of-range columns
// on ragged rows.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseDateValue converts a free-text date to epoch milliseconds. Unparsable
// dates yield 0, which sorts as oldest.
func parseDateValue(date string) int64 {
	if date == "" {
		return 0
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

// normalizePokepaste coerces a pokepaste link to have an https prefix.
func normalizePokepaste(paste string) string {
	if paste == "" {
		return ""
	}
	if strings.HasPrefix(paste, "http") {
		return paste
	}
	return "https://" + paste
}
