// Package widget serves a small embeddable HTML view of recent teams.
package widget

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vgcpastes/team-finder/internal/models"
	"github.com/vgcpastes/team-finder/internal/query"
	"github.com/vgcpastes/team-finder/internal/services"
)

const defaultLimit = 10

var page = template.Must(template.New("widget").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>VGC Team Finder</title>
<style>
body { font-family: system-ui, sans-serif; margin: 0; padding: 12px; background: #f6f6f8; }
.team { background: #fff; border-radius: 8px; padding: 10px 14px; margin-bottom: 10px; box-shadow: 0 1px 3px rgba(0,0,0,.1); }
.team h3 { margin: 0 0 4px; font-size: 15px; }
.meta { color: #666; font-size: 12px; margin-bottom: 6px; }
.slots img { width: 56px; height: 56px; image-rendering: auto; }
.rental { font-family: monospace; background: #eef; padding: 1px 6px; border-radius: 4px; }
.empty { color: #888; padding: 24px; text-align: center; }
</style>
</head>
<body>
{{if not .Teams}}<div class="empty">No teams found.</div>{{end}}
{{range .Teams}}<div class="team">
<h3>{{.Description}}</h3>
<div class="meta">
{{if .Player}}{{.Player}} &middot; {{end}}Regulation {{.Regulation}}{{if .Event}} &middot; {{.Event}}{{end}}{{if .Rank}} &middot; {{.Rank}}{{end}}
{{if .RentalCode}} &middot; <span class="rental">{{.RentalCode}}</span>{{end}}
</div>
<div class="slots">{{range .Pokemon}}<img src="{{.Sprite}}" alt="{{.Name}}" title="{{.Name}} @ {{.Item}}">{{end}}</div>
</div>
{{end}}
</body>
</html>`))

type pageData struct {
	Teams []models.Team
}

// Handler renders recent teams, optionally filtered by regulation or a
// free-text query.
func Handler(store *services.TeamStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		pool := store.Teams()

		limit := defaultLimit
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 50 {
				limit = n
			}
		}

		res := query.Search(pool, c.Query("q"), query.SearchOptions{
			Regulation: c.Query("regulation"),
			Sort:       query.SortRecent,
			Limit:      limit,
		})

		c.Writer.Header().Set("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		if err := page.Execute(c.Writer, pageData{Teams: res.Teams}); err != nil {
			_ = c.Error(err)
		}
	}
}
