package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vgcpastes/team-finder/internal/config"
)

func testRegulations() []config.Regulation {
	return []config.Regulation{
		{Name: "H", Sheet: "SV Regulation H"},
		{Name: "G", Sheet: "SV Regulation G"},
	}
}

func TestRefreshPublishesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("sheet") {
		case "SV Regulation H":
			w.Write([]byte(testSheet(sheetRow(fullRow("F1")), sheetRow(fullRow("F2")))))
		case "SV Regulation G":
			w.Write([]byte(testSheet(sheetRow(fullRow("G1")))))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	store := NewTeamStore()
	worker := NewRefreshWorker(testFetcher(srv), newTestNormalizer(), store, testRegulations(), time.Hour)

	worker.Refresh(context.Background())

	if got := len(store.Teams()); got != 3 {
		t.Fatalf("teams loaded = %d, want 3", got)
	}

	status := worker.Status()
	if status.TeamsLoaded != 3 {
		t.Errorf("status.TeamsLoaded = %d, want 3", status.TeamsLoaded)
	}
	if status.LastFetchTime == nil {
		t.Error("status.LastFetchTime not set")
	}
	if status.LastError != "" {
		t.Errorf("status.LastError = %q, want empty", status.LastError)
	}

	counts := store.RegulationCounts()
	if len(counts) != 2 || counts[0].Name != "G" || counts[0].Count != 1 || counts[1].Name != "H" || counts[1].Count != 2 {
		t.Errorf("regulation counts = %v", counts)
	}
}

func TestRefreshToleratesOneFailedSheet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("sheet") == "SV Regulation G" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(testSheet(sheetRow(fullRow("F1")))))
	}))
	defer srv.Close()

	store := NewTeamStore()
	worker := NewRefreshWorker(testFetcher(srv), newTestNormalizer(), store, testRegulations(), time.Hour)
	worker.Refresh(context.Background())

	if got := len(store.Teams()); got != 1 {
		t.Fatalf("teams loaded = %d, want 1 from the surviving sheet", got)
	}
	if status := worker.Status(); status.LastError != "" {
		t.Errorf("partial failure recorded as error: %q", status.LastError)
	}
}

func TestRefreshKeepsSnapshotWhenAllSheetsFail(t *testing.T) {
	var failing atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(testSheet(sheetRow(fullRow("F1")))))
	}))
	defer srv.Close()

	store := NewTeamStore()
	worker := NewRefreshWorker(testFetcher(srv), newTestNormalizer(), store, testRegulations(), time.Hour)

	worker.Refresh(context.Background())
	if got := len(store.Teams()); got != 2 {
		t.Fatalf("initial load = %d teams, want 2", got)
	}

	failing.Store(true)
	worker.Refresh(context.Background())

	if got := len(store.Teams()); got != 2 {
		t.Errorf("teams after failed refresh = %d, want previous snapshot kept", got)
	}
	if status := worker.Status(); status.LastError == "" {
		t.Error("total failure not recorded in status")
	}
}

func TestStorePublishReplacesSnapshot(t *testing.T) {
	store := NewTeamStore()
	if got := len(store.Teams()); got != 0 {
		t.Fatalf("fresh store has %d teams", got)
	}

	first := store.Current()
	store.Publish(nil, time.Now())
	if store.Current() == first {
		t.Error("Publish did not swap the snapshot")
	}
}
