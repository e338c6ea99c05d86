package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vgcpastes/team-finder/internal/metrics"
)

const gvizCSVURL = "https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:csv&sheet=%s"

// SheetFetcher downloads raw CSV text for individual tabs of a published
// Google spreadsheet.
type SheetFetcher struct {
	spreadsheetID string
	client        *http.Client
	timeout       time.Duration
	baseURL       string // format string, overridden in tests
}

func NewSheetFetcher(spreadsheetID string, timeout time.Duration) *SheetFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SheetFetcher{
		spreadsheetID: spreadsheetID,
		client:        &http.Client{Timeout: timeout},
		timeout:       timeout,
		baseURL:       gvizCSVURL,
	}
}

// FetchSheet returns the raw CSV contents of a single sheet tab. Errors are
// per-sheet: the caller degrades a failed sheet to zero teams rather than
// aborting the refresh.
func (f *SheetFetcher) FetchSheet(ctx context.Context, sheet string) (string, error) {
	reqURL := fmt.Sprintf(f.baseURL, f.spreadsheetID, url.QueryEscape(sheet))

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.SheetFetchFailures.WithLabelValues(sheet).Inc()
		return "", fmt.Errorf("failed to fetch sheet %q: %w", sheet, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.SheetFetchFailures.WithLabelValues(sheet).Inc()
		return "", fmt.Errorf("sheet %q returned status %d", sheet, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.SheetFetchFailures.WithLabelValues(sheet).Inc()
		return "", fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return string(body), nil
}
