package usecase

import (
	"testing"
	"time"

	"github.com/Uchiha-Network/Story-Guard/internal/domain"
)

func TestStatsAggregator(t *testing.T) {
	repo := newMemRepo()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	seedAsset(t, repo, "asset-1", "0f0f0f0f0f0f0f0f")
	seedAsset(t, repo, "asset-2", "ffffffffffffffff")

	statuses := []domain.ViolationStatus{
		domain.ViolationPending,
		domain.ViolationPending,
		domain.ViolationResolved,
		domain.ViolationDisputed,
	}
	for i, status := range statuses {
		err := repo.PutViolation(domain.Violation{
			ID:             "vio-" + string(rune('a'+i)),
			RegisteredIPID: "asset-1",
			FoundURL:       "https://example.com/" + string(rune('a'+i)),
			Status:         status,
		})
		if err != nil {
			t.Fatalf("seed violation: %v", err)
		}
	}

	scanTimes := []time.Time{
		now.Add(-time.Hour),
		now.Add(-6 * 24 * time.Hour),
		now.Add(-8 * 24 * time.Hour),
	}
	for i, at := range scanTimes {
		err := repo.PutScan(domain.ScanRecord{
			ID:        "scan-" + string(rune('a'+i)),
			URL:       "https://example.com",
			ScannedAt: at,
			Status:    domain.ScanCompleted,
		})
		if err != nil {
			t.Fatalf("seed scan: %v", err)
		}
	}

	agg := &StatsAggregator{
		Assets:     repo,
		Violations: repo,
		Scans:      repo,
		Now:        func() time.Time { return now },
	}
	stats := agg.Compute()

	if stats.AssetCount != 2 {
		t.Fatalf("asset count: got %d", stats.AssetCount)
	}
	if stats.ViolationCount != 4 {
		t.Fatalf("violation count: got %d", stats.ViolationCount)
	}
	if stats.PendingCount != 2 || stats.ResolvedCount != 1 {
		t.Fatalf("status counts: pending %d resolved %d", stats.PendingCount, stats.ResolvedCount)
	}
	if stats.ScanCount != 3 {
		t.Fatalf("scan count: got %d", stats.ScanCount)
	}
	if stats.ScansInWindow != 2 {
		t.Fatalf("scans in 7d window: got %d", stats.ScansInWindow)
	}
}

func TestStatsCustomWindow(t *testing.T) {
	repo := newMemRepo()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	err := repo.PutScan(domain.ScanRecord{
		ID:        "scan-1",
		URL:       "https://example.com",
		ScannedAt: now.Add(-2 * time.Hour),
		Status:    domain.ScanCompleted,
	})
	if err != nil {
		t.Fatalf("seed scan: %v", err)
	}

	agg := &StatsAggregator{
		Assets:     repo,
		Violations: repo,
		Scans:      repo,
		Window:     time.Hour,
		Now:        func() time.Time { return now },
	}
	if got := agg.Compute().ScansInWindow; got != 0 {
		t.Fatalf("expected 0 scans inside 1h window, got %d", got)
	}
}

func TestStatsEmptyStore(t *testing.T) {
	repo := newMemRepo()
	agg := &StatsAggregator{Assets: repo, Violations: repo, Scans: repo}
	stats := agg.Compute()
	if stats != (domain.Stats{}) {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}
