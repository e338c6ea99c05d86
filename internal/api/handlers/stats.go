package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vgcpastes/team-finder/internal/query"
	"github.com/vgcpastes/team-finder/internal/services"
)

type StatsHandler struct {
	store *services.TeamStore
}

func NewStatsHandler(store *services.TeamStore) *StatsHandler {
	return &StatsHandler{store: store}
}

// PokemonUsage handles GET /api/usage?regulation=...&limit=...
func (h *StatsHandler) PokemonUsage(c *gin.Context) {
	pool := h.store.Teams()
	if reg := c.Query("regulation"); reg != "" {
		pool = query.Search(pool, "", query.SearchOptions{Regulation: reg}).Teams
	}
	usage := query.PokemonUsage(pool, intQuery(c, "limit", 20, 1, 100))
	c.JSON(http.StatusOK, gin.H{"totalTeams": len(pool), "usage": usage})
}

// ItemUsage handles GET /api/items?limit=...
func (h *StatsHandler) ItemUsage(c *gin.Context) {
	usage, total := query.ItemUsage(h.store.Teams(), intQuery(c, "limit", 20, 1, 100))
	c.JSON(http.StatusOK, gin.H{"totalItems": total, "usage": usage})
}

// ItemsForPokemon handles GET /api/items/:pokemon
func (h *StatsHandler) ItemsForPokemon(c *gin.Context) {
	pokemon := c.Param("pokemon")
	items, total := query.ItemsFor(h.store.Teams(), pokemon)
	if total == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No data found for " + pokemon})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pokemon": pokemon, "totalCount": total, "items": items})
}

// Teammates handles GET /api/teammates/:pokemon?limit=...
func (h *StatsHandler) Teammates(c *gin.Context) {
	pokemon := c.Param("pokemon")
	teammates, poolSize := query.Teammates(h.store.Teams(), pokemon, intQuery(c, "limit", 10, 1, 20))
	if poolSize == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No teams found with " + pokemon})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pokemon": pokemon, "totalTeams": poolSize, "teammates": teammates})
}

// Regulations handles GET /api/regulations
func (h *StatsHandler) Regulations(c *gin.Context) {
	teams := h.store.Teams()
	c.JSON(http.StatusOK, gin.H{
		"totalTeams":  len(teams),
		"regulations": h.store.RegulationCounts(),
	})
}
