package usecase

import (
	"time"

	"github.com/Uchiha-Network/Story-Guard/internal/domain"
)

const DefaultStatsWindow = 7 * 24 * time.Hour

// StatsAggregator derives read-only rollups from the store snapshot.
// It holds no state of its own.
type StatsAggregator struct {
	Assets     AssetRepository
	Violations ViolationRepository
	Scans      ScanRepository

	// Window for the recent-scans count. Zero means DefaultStatsWindow.
	Window time.Duration
	Now    func() time.Time
}

func (a *StatsAggregator) Compute() domain.Stats {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	window := a.Window
	if window <= 0 {
		window = DefaultStatsWindow
	}
	cutoff := now().Add(-window)

	stats := domain.Stats{
		AssetCount: len(a.Assets.ListAssets()),
	}
	for _, v := range a.Violations.ListViolations() {
		stats.ViolationCount++
		switch v.Status {
		case domain.ViolationPending:
			stats.PendingCount++
		case domain.ViolationResolved:
			stats.ResolvedCount++
		}
	}
	for _, rec := range a.Scans.ListScans() {
		stats.ScanCount++
		if rec.ScannedAt.After(cutoff) {
			stats.ScansInWindow++
		}
	}
	return stats
}
