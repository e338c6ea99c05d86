package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vgcpastes/team-finder/internal/config"
	"github.com/vgcpastes/team-finder/internal/metrics"
	"github.com/vgcpastes/team-finder/internal/models"
)

// RefreshWorker periodically re-fetches every regulation sheet and publishes
// a new store snapshot. It is the only writer; a refresh that fails leaves
// the previous snapshot in place.
type RefreshWorker struct {
	fetcher     *SheetFetcher
	normalizer  *Normalizer
	store       *TeamStore
	regulations []config.Regulation
	interval    time.Duration

	mu            sync.RWMutex
	inProgress    bool
	lastFetchTime time.Time
	lastError     string
}

func NewRefreshWorker(fetcher *SheetFetcher, normalizer *Normalizer, store *TeamStore, regulations []config.Regulation, interval time.Duration) *RefreshWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &RefreshWorker{
		fetcher:     fetcher,
		normalizer:  normalizer,
		store:       store,
		regulations: regulations,
		interval:    interval,
	}
}

// Start runs an immediate refresh, then refreshes on a ticker until ctx is
// cancelled.
func (w *RefreshWorker) Start(ctx context.Context) {
	slog.Info("refresh worker started", "interval", w.interval, "sheets", len(w.regulations))

	w.Refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("refresh worker stopping")
			return
		case <-ticker.C:
			w.Refresh(ctx)
		}
	}
}

// Refresh fetches all sheets and swaps the store snapshot. Overlapping
// triggers are skipped, not queued. One failing sheet contributes zero teams
// but never aborts the other sheets.
func (w *RefreshWorker) Refresh(ctx context.Context) {
	w.mu.Lock()
	if w.inProgress {
		w.mu.Unlock()
		slog.Debug("refresh already in progress, skipping")
		return
	}
	w.inProgress = true
	w.mu.Unlock()

	start := time.Now()
	slog.Info("starting data refresh", "spreadsheet_sheets", len(w.regulations))

	allTeams := make([]models.Team, 0, 2048)
	failed := 0
	for _, reg := range w.regulations {
		if ctx.Err() != nil {
			break
		}
		csvText, err := w.fetcher.FetchSheet(ctx, reg.Sheet)
		if err != nil {
			slog.Warn("could not fetch sheet", "sheet", reg.Sheet, "error", err)
			failed++
			continue
		}
		teams := w.normalizer.ParseSheet(csvText, reg.Name)
		slog.Info("loaded teams from sheet", "sheet", reg.Sheet, "teams", len(teams))
		allTeams = append(allTeams, teams...)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inProgress = false

	if ctx.Err() != nil {
		w.lastError = ctx.Err().Error()
		return
	}
	if failed == len(w.regulations) && len(w.regulations) > 0 {
		// Every sheet failed: keep the previous snapshot rather than
		// publishing an empty collection.
		w.lastError = "all sheets failed to fetch"
		metrics.RefreshFailuresTotal.Inc()
		slog.Error("data refresh failed, keeping previous snapshot", "failed_sheets", failed)
		return
	}

	now := time.Now()
	w.store.Publish(allTeams, now)
	w.lastFetchTime = now
	w.lastError = ""

	metrics.RefreshesTotal.Inc()
	metrics.TeamsLoaded.Set(float64(len(allTeams)))
	metrics.RefreshDuration.Observe(time.Since(start).Seconds())

	slog.Info("data refresh completed",
		"total_teams", len(allTeams),
		"failed_sheets", failed,
		"duration", time.Since(start).Round(time.Millisecond),
	)
}

// Status reports the worker and store state for health endpoints.
func (w *RefreshWorker) Status() Status {
	w.mu.RLock()
	defer w.mu.RUnlock()

	st := Status{
		TeamsLoaded:      len(w.store.Teams()),
		RegulationCounts: w.store.RegulationCounts(),
		FetchInProgress:  w.inProgress,
		LastError:        w.lastError,
	}
	if !w.lastFetchTime.IsZero() {
		t := w.lastFetchTime
		st.LastFetchTime = &t
	}
	return st
}
