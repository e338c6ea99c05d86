package widget

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vgcpastes/team-finder/internal/models"
	"github.com/vgcpastes/team-finder/internal/services"
)

func widgetRouter(teams []models.Team) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := services.NewTeamStore()
	store.Publish(teams, time.Now())
	r := gin.New()
	r.GET("/widget", Handler(store))
	return r
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestWidgetRendersTeams(t *testing.T) {
	r := widgetRouter([]models.Team{
		{
			TeamID:      "F1",
			Description: "Rain balance",
			Player:      "Alice",
			Regulation:  "H",
			RentalCode:  "HGK2PL",
			Pokemon: []models.Slot{
				{Name: "Pelipper", Item: "Damp Rock", Sprite: "https://img.example/pelipper.png"},
			},
		},
	})

	w := get(t, r, "/widget")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}

	body := w.Body.String()
	for _, want := range []string{"Rain balance", "Alice", "HGK2PL", "https://img.example/pelipper.png"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestWidgetEmptyState(t *testing.T) {
	w := get(t, widgetRouter(nil), "/widget")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No teams found") {
		t.Error("empty state message missing")
	}
}
