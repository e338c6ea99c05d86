package handlers

import (
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vgcpastes/team-finder/internal/config"
	"github.com/vgcpastes/team-finder/internal/models"
	"github.com/vgcpastes/team-finder/internal/query"
	"github.com/vgcpastes/team-finder/internal/services"
)

type TeamHandler struct {
	store   *services.TeamStore
	weights config.RecommendWeights
}

func NewTeamHandler(store *services.TeamStore, weights config.RecommendWeights) *TeamHandler {
	return &TeamHandler{store: store, weights: weights}
}

// SearchTeams handles GET /api/search?q=...&regulation=...&min_placement=...&sort=...&limit=...
func (h *TeamHandler) SearchTeams(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		q = c.Query("query")
	}
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	result := query.Search(h.store.Teams(), q, query.SearchOptions{
		Regulation:   c.Query("regulation"),
		MinPlacement: intQuery(c, "min_placement", 0, 0, 0),
		Sort:         c.Query("sort"),
		Limit:        intQuery(c, "limit", 20, 1, 100),
	})
	c.JSON(http.StatusOK, result)
}

// RandomTeam handles GET /api/random?pokemon=...&regulation=...
func (h *TeamHandler) RandomTeam(c *gin.Context) {
	pool := h.store.Teams()
	if reg := c.Query("regulation"); reg != "" {
		pool = query.Search(pool, "", query.SearchOptions{Regulation: reg}).Teams
	}
	if pokemon := c.Query("pokemon"); pokemon != "" {
		pool = query.TeamsWith(pool, pokemon, "")
	}
	if len(pool) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No teams found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": pool[rand.Intn(len(pool))]})
}

// TeamByRental handles GET /api/rental/:code
func (h *TeamHandler) TeamByRental(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	for _, team := range h.store.Teams() {
		if team.RentalCode == code {
			c.JSON(http.StatusOK, gin.H{"team": team})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Rental code not found"})
}

// RentalTeams handles GET /api/rentals?pokemon=...&regulation=...&limit=...
func (h *TeamHandler) RentalTeams(c *gin.Context) {
	pool := make([]models.Team, 0)
	for _, team := range h.store.Teams() {
		if team.HasRentalCode() {
			pool = append(pool, team)
		}
	}
	if reg := c.Query("regulation"); reg != "" {
		pool = query.Search(pool, "", query.SearchOptions{Regulation: reg}).Teams
	}
	if pokemon := c.Query("pokemon"); pokemon != "" {
		pool = query.TeamsWith(pool, pokemon, "")
	}
	result := query.Search(pool, "", query.SearchOptions{
		Limit: intQuery(c, "limit", 20, 1, 100),
	})
	c.JSON(http.StatusOK, result)
}

// PlayerTeams handles GET /api/player/:name
func (h *TeamHandler) PlayerTeams(c *gin.Context) {
	player := c.Param("name")
	playerNorm := query.Normalize(player)

	matched := make([]models.Team, 0)
	for _, team := range h.store.Teams() {
		if strings.Contains(query.Normalize(team.Player), playerNorm) {
			matched = append(matched, team)
		}
	}
	if len(matched) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No teams found for player " + strconv.Quote(player)})
		return
	}
	result := query.Search(matched, "", query.SearchOptions{
		Limit: intQuery(c, "limit", 20, 1, 50),
	})
	c.JSON(http.StatusOK, result)
}

// TournamentTeams handles GET /api/tournament?event=...&limit=...
func (h *TeamHandler) TournamentTeams(c *gin.Context) {
	event := c.Query("event")
	if event == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'event' is required"})
		return
	}
	eventNorm := query.Normalize(event)

	matched := make([]models.Team, 0)
	for _, team := range h.store.Teams() {
		if strings.Contains(query.Normalize(team.Event), eventNorm) ||
			strings.Contains(query.Normalize(team.Description), eventNorm) {
			matched = append(matched, team)
		}
	}
	if len(matched) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No teams found from " + strconv.Quote(event)})
		return
	}
	result := query.Search(matched, "", query.SearchOptions{
		Limit: intQuery(c, "limit", 20, 1, 100),
	})
	c.JSON(http.StatusOK, result)
}

// SimilarTeams handles GET /api/similar?pokemon=a,b,c&min_shared=3&limit=10
func (h *TeamHandler) SimilarTeams(c *gin.Context) {
	raw := c.Query("pokemon")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'pokemon' is required (comma-separated names)"})
		return
	}
	names := strings.Split(raw, ",")

	similar := query.SimilarTeams(h.store.Teams(), names,
		intQuery(c, "min_shared", 3, 1, 6),
		intQuery(c, "limit", 10, 1, 50),
	)
	c.JSON(http.StatusOK, gin.H{"total": len(similar), "teams": similar})
}

// RecommendTeams handles GET /api/recommend?description=...&limit=...
func (h *TeamHandler) RecommendTeams(c *gin.Context) {
	description := c.Query("description")
	if description == "" {
		description = c.Query("q")
	}
	if description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'description' is required"})
		return
	}

	recs := query.Recommend(h.store.Teams(), description, h.weights, time.Now(),
		intQuery(c, "limit", 5, 1, 20))
	c.JSON(http.StatusOK, gin.H{"total": len(recs), "recommendations": recs})
}

// intQuery parses an integer query parameter with a default and optional
// bounds (lo/hi of 0 means unbounded on that side).
func intQuery(c *gin.Context, name string, def, lo, hi int) int {
	v := def
	if raw := c.Query(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			v = n
		}
	}
	if lo > 0 && v < lo {
		v = lo
	}
	if hi > 0 && v > hi {
		v = hi
	}
	return v
}
