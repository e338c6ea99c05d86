package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vgcpastes/team-finder/internal/config"
	"github.com/vgcpastes/team-finder/internal/models"
	"github.com/vgcpastes/team-finder/internal/services"
)

func testStore() *services.TeamStore {
	store := services.NewTeamStore()
	store.Publish([]models.Team{
		{
			TeamID:      "F1",
			Description: "Rain balance",
			Player:      "Alice",
			Regulation:  "H",
			Event:       "Worlds 2024",
			RentalCode:  "HGK2PL",
			DateValue:   2000,
			Pokemon: []models.Slot{
				{Name: "Pelipper", Item: "Damp Rock"},
				{Name: "Incineroar", Item: "Safety Goggles"},
			},
		},
		{
			TeamID:      "G1",
			Description: "Hyper offense",
			Player:      "Bob",
			Regulation:  "G",
			Event:       "Regional Liverpool",
			DateValue:   1000,
			Pokemon: []models.Slot{
				{Name: "Flutter Mane", Item: "Booster Energy"},
				{Name: "Incineroar", Item: "Sitrus Berry"},
			},
		},
	}, time.Now())
	return store
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := testStore()
	teamHandler := NewTeamHandler(store, config.RecommendWeights{
		MentionedPokemon: 10,
		ArchetypeKeyword: 5,
		ArchetypePokemon: 3,
		RentalCode:       2,
		RecentWithin:     30 * 24 * time.Hour,
		RecentBonus:      1,
	})
	statsHandler := NewStatsHandler(store)

	r := gin.New()
	r.GET("/api/search", teamHandler.SearchTeams)
	r.GET("/api/random", teamHandler.RandomTeam)
	r.GET("/api/rental/:code", teamHandler.TeamByRental)
	r.GET("/api/rentals", teamHandler.RentalTeams)
	r.GET("/api/player/:name", teamHandler.PlayerTeams)
	r.GET("/api/tournament", teamHandler.TournamentTeams)
	r.GET("/api/similar", teamHandler.SimilarTeams)
	r.GET("/api/recommend", teamHandler.RecommendTeams)
	r.GET("/api/usage", statsHandler.PokemonUsage)
	r.GET("/api/items", statsHandler.ItemUsage)
	r.GET("/api/items/:pokemon", statsHandler.ItemsForPokemon)
	r.GET("/api/teammates/:pokemon", statsHandler.Teammates)
	r.GET("/api/regulations", statsHandler.Regulations)
	return r
}

func doGET(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response for %s: %v", path, err)
	}
	return w, body
}

func TestSearchEndpoint(t *testing.T) {
	r := testRouter()

	w, body := doGET(t, r, "/api/search?q=pelipper")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if total := body["total"].(float64); total != 1 {
		t.Errorf("total = %v, want 1", total)
	}

	teams := body["teams"].([]any)
	team := teams[0].(map[string]any)
	if team["teamId"] != "F1" {
		t.Errorf("teamId = %v, want F1", team["teamId"])
	}
}

func TestSearchEndpointRequiresQuery(t *testing.T) {
	w, _ := doGET(t, testRouter(), "/api/search")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRandomEndpoint(t *testing.T) {
	w, body := doGET(t, testRouter(), "/api/random?pokemon=pelipper")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	team := body["team"].(map[string]any)
	if team["teamId"] != "F1" {
		t.Errorf("teamId = %v, want F1", team["teamId"])
	}
}

func TestRandomEndpointNoMatch(t *testing.T) {
	w, _ := doGET(t, testRouter(), "/api/random?pokemon=mewtwo")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestRentalEndpoint(t *testing.T) {
	w, body := doGET(t, testRouter(), "/api/rental/hgk2pl")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	team := body["team"].(map[string]any)
	if team["rentalCode"] != "HGK2PL" {
		t.Errorf("rentalCode = %v", team["rentalCode"])
	}

	w, _ = doGET(t, testRouter(), "/api/rental/ZZZZZZ")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestRentalsEndpoint(t *testing.T) {
	w, body := doGET(t, testRouter(), "/api/rentals")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if total := body["total"].(float64); total != 1 {
		t.Errorf("total = %v, want only the team with a code", total)
	}
}

func TestPlayerEndpoint(t *testing.T) {
	w, body := doGET(t, testRouter(), "/api/player/alice")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if total := body["total"].(float64); total != 1 {
		t.Errorf("total = %v, want 1", total)
	}

	w, _ = doGET(t, testRouter(), "/api/player/nobody")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestTournamentEndpoint(t *testing.T) {
	w, body := doGET(t, testRouter(), "/api/tournament?event=worlds")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if total := body["total"].(float64); total != 1 {
		t.Errorf("total = %v, want 1", total)
	}

	w, _ = doGET(t, testRouter(), "/api/tournament")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status without event = %d, want 400", w.Code)
	}
}

func TestSimilarEndpoint(t *testing.T) {
	w, body := doGET(t, testRouter(), "/api/similar?pokemon=Flutter+Mane,Incineroar&min_shared=2")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if total := body["total"].(float64); total != 1 {
		t.Errorf("total = %v, want only G1", total)
	}
}

func TestRecommendEndpoint(t *testing.T) {
	w, body := doGET(t, testRouter(), "/api/recommend?description=rain+team")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	recs := body["recommendations"].([]any)
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	top := recs[0].(map[string]any)
	team := top["team"].(map[string]any)
	if team["teamId"] != "F1" {
		t.Errorf("recommended teamId = %v, want F1", team["teamId"])
	}
}

func TestUsageEndpoint(t *testing.T) {
	w, body := doGET(t, testRouter(), "/api/usage")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	usage := body["usage"].([]any)
	top := usage[0].(map[string]any)
	if top["name"] != "Incineroar" || top["count"].(float64) != 2 {
		t.Errorf("top usage = %v", top)
	}
	if top["percentage"].(float64) != 100.0 {
		t.Errorf("percentage = %v, want 100", top["percentage"])
	}
}

func TestUsageEndpointRegulationFilter(t *testing.T) {
	_, body := doGET(t, testRouter(), "/api/usage?regulation=G")
	if total := body["totalTeams"].(float64); total != 1 {
		t.Errorf("totalTeams = %v, want 1", total)
	}
}

func TestItemsEndpoint(t *testing.T) {
	w, body := doGET(t, testRouter(), "/api/items")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if total := body["totalItems"].(float64); total != 4 {
		t.Errorf("totalItems = %v, want 4", total)
	}
}

func TestItemsForPokemonEndpoint(t *testing.T) {
	w, body := doGET(t, testRouter(), "/api/items/incineroar")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if total := body["totalCount"].(float64); total != 2 {
		t.Errorf("totalCount = %v, want 2", total)
	}

	w, _ = doGET(t, testRouter(), "/api/items/mewtwo")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestTeammatesEndpoint(t *testing.T) {
	w, body := doGET(t, testRouter(), "/api/teammates/incineroar")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if total := body["totalTeams"].(float64); total != 2 {
		t.Errorf("totalTeams = %v, want 2", total)
	}
}

func TestRegulationsEndpoint(t *testing.T) {
	w, body := doGET(t, testRouter(), "/api/regulations")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if total := body["totalTeams"].(float64); total != 2 {
		t.Errorf("totalTeams = %v, want 2", total)
	}
	regs := body["regulations"].([]any)
	if len(regs) != 2 {
		t.Errorf("got %d regulations, want 2", len(regs))
	}
}
