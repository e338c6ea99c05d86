package api

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vgcpastes/team-finder/internal/api/handlers"
	"github.com/vgcpastes/team-finder/internal/config"
	"github.com/vgcpastes/team-finder/internal/openapi"
	"github.com/vgcpastes/team-finder/internal/services"
	"github.com/vgcpastes/team-finder/internal/widget"
)

// MCP tool names surfaced in the root service listing.
var toolNames = []string{
	"search_teams", "get_regulations", "search_pokemon_with_item",
	"get_pokemon_teammates", "get_pokemon_items", "random_team",
	"get_pokemon_usage", "get_item_usage", "get_team_by_rental",
	"get_rental_teams", "get_tournament_teams", "get_player_teams",
	"get_similar_teams", "recommend_teams",
}

func SetupRouter(cfg *config.Config, store *services.TeamStore, worker *services.RefreshWorker, mcpHandler http.Handler) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger())
	router.Use(Instrument())
	router.Use(RateLimit(cfg.RateLimitPerMin, cfg.RateLimitBurst))

	// CORS configuration - allow origins from environment or default to all
	corsConfig := cors.DefaultConfig()
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	teamHandler := handlers.NewTeamHandler(store, cfg.Recommend)
	statsHandler := handlers.NewStatsHandler(store)

	api := router.Group("/api")
	{
		api.GET("/search", teamHandler.SearchTeams)
		api.GET("/random", teamHandler.RandomTeam)
		api.GET("/rental/:code", teamHandler.TeamByRental)
		api.GET("/rentals", teamHandler.RentalTeams)
		api.GET("/player/:name", teamHandler.PlayerTeams)
		api.GET("/tournament", teamHandler.TournamentTeams)
		api.GET("/similar", teamHandler.SimilarTeams)
		api.GET("/recommend", teamHandler.RecommendTeams)

		api.GET("/usage", statsHandler.PokemonUsage)
		api.GET("/items", statsHandler.ItemUsage)
		api.GET("/items/:pokemon", statsHandler.ItemsForPokemon)
		api.GET("/teammates/:pokemon", statsHandler.Teammates)
		api.GET("/regulations", statsHandler.Regulations)
	}

	// MCP over Streamable HTTP; /sse is kept as an alias for older clients.
	if mcpHandler != nil {
		router.Any("/mcp", gin.WrapH(mcpHandler))
		router.Any("/sse", gin.WrapH(mcpHandler))
	}

	router.GET("/widget", widget.Handler(store))

	router.GET("/.well-known/openapi.yaml", func(c *gin.Context) {
		doc, err := openapi.YAML()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render spec"})
			return
		}
		c.Data(http.StatusOK, "text/yaml", doc)
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status := worker.Status()
		health := "healthy"
		if status.TeamsLoaded == 0 {
			health = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    health,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"data":      status,
		})
	})

	// Readiness probe: not ready until the first snapshot is published.
	router.GET("/ready", func(c *gin.Context) {
		if worker.Status().TeamsLoaded == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false, "reason": "Data not loaded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ready": true})
	})

	// Service info
	router.GET("/", func(c *gin.Context) {
		regs := make([]string, 0, len(cfg.Regulations))
		for _, r := range cfg.Regulations {
			regs = append(regs, r.Name)
		}
		c.JSON(http.StatusOK, gin.H{
			"name":        "VGC Team Finder",
			"version":     "2.0.0",
			"teamsLoaded": worker.Status().TeamsLoaded,
			"regulations": regs,
			"endpoints": gin.H{
				"mcp":     "/mcp",
				"health":  "/health",
				"ready":   "/ready",
				"openapi": "/.well-known/openapi.yaml",
				"widget":  "/widget",
				"api": gin.H{
					"search":      "/api/search",
					"random":      "/api/random",
					"rental":      "/api/rental/:code",
					"rentals":     "/api/rentals",
					"usage":       "/api/usage",
					"items":       "/api/items",
					"regulations": "/api/regulations",
					"teammates":   "/api/teammates/:pokemon",
					"player":      "/api/player/:name",
					"tournament":  "/api/tournament",
					"similar":     "/api/similar",
					"recommend":   "/api/recommend",
				},
			},
			"tools": toolNames,
		})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}
