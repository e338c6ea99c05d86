package services

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/vgcpastes/team-finder/internal/models"
)

// TeamStore holds the current Team collection. Refreshes publish a whole new
// snapshot; readers hold one snapshot reference for the duration of a query
// and never observe a partial update.
type TeamStore struct {
	snapshot atomic.Pointer[Snapshot]
}

// Snapshot is one immutable refresh epoch of the team collection.
type Snapshot struct {
	Teams     []models.Team
	FetchedAt time.Time
}

// Status is the externally visible state of the store, read by health checks.
type Status struct {
	TeamsLoaded      int                      `json:"teamsLoaded"`
	RegulationCounts []models.RegulationCount `json:"regulationCounts"`
	LastFetchTime    *time.Time               `json:"lastFetchTime"`
	FetchInProgress  bool                     `json:"fetchInProgress"`
	LastError        string                   `json:"lastError,omitempty"`
}

func NewTeamStore() *TeamStore {
	s := &TeamStore{}
	s.snapshot.Store(&Snapshot{})
	return s
}

// Teams returns the current snapshot's team collection. The returned slice
// must be treated as read-only.
func (s *TeamStore) Teams() []models.Team {
	return s.snapshot.Load().Teams
}

// Current returns the current snapshot.
func (s *TeamStore) Current() *Snapshot {
	return s.snapshot.Load()
}

// Publish atomically replaces the store's snapshot.
func (s *TeamStore) Publish(teams []models.Team, fetchedAt time.Time) {
	s.snapshot.Store(&Snapshot{Teams: teams, FetchedAt: fetchedAt})
}

// RegulationCounts tallies the loaded teams per regulation label, sorted by
// label.
func (s *TeamStore) RegulationCounts() []models.RegulationCount {
	counts := map[string]int{}
	for _, t := range s.Teams() {
		counts[t.Regulation]++
	}
	out := make([]models.RegulationCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, models.RegulationCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
