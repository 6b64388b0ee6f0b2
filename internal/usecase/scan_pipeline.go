package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Uchiha-Network/Story-Guard/internal/domain"
)

const DefaultMatchThreshold = 85

type ScanRequest struct {
	Target string
	// Candidates may be supplied directly by the boundary. When empty
	// and a CandidateSource is configured, the source is asked instead.
	Candidates []domain.Candidate
}

type ScanResult struct {
	Record     domain.ScanRecord
	Violations []domain.Violation
}

// ScanPipeline orchestrates one detection run: score every candidate
// against the registered corpus, commit deduplicated violations, then
// commit exactly one scan record carrying the true counts.
type ScanPipeline struct {
	Assets     AssetRepository
	Violations ViolationRepository
	Scans      ScanRepository
	Match      Matcher
	Source     CandidateSource

	// Threshold is the similarity a candidate must exceed to produce a
	// violation. Zero means DefaultMatchThreshold.
	Threshold int
	// Concurrency bounds the scoring stage. Zero means 4.
	Concurrency int
	Now         func() time.Time
}

type candidateMatch struct {
	assetID    string
	similarity int
}

func (uc *ScanPipeline) Execute(ctx context.Context, req ScanRequest) (*ScanResult, error) {
	if req.Target == "" {
		return nil, fmt.Errorf("%w: target is required", domain.ErrValidation)
	}

	now := time.Now
	if uc.Now != nil {
		now = uc.Now
	}
	threshold := uc.Threshold
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}

	candidates := req.Candidates
	if len(candidates) == 0 && uc.Source != nil {
		found, err := uc.Source.Discover(ctx, req.Target)
		if err != nil {
			return nil, fmt.Errorf("discover candidates: %w", err)
		}
		candidates = found
	}

	// Consistent snapshot of the corpus for the whole run.
	assets := uc.Assets.ListAssets()
	if len(assets) == 0 {
		return uc.commitRecord(req.Target, now().UTC(), 0, nil)
	}

	matches, err := uc.scoreCandidates(ctx, candidates, assets, threshold)
	if err != nil {
		return nil, err
	}

	var committed []domain.Violation
	for i, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, match := range matches[i] {
			if _, err := uc.Violations.FindViolation(match.assetID, req.Target); err == nil {
				// Already recorded for this (asset, target) pair in an
				// earlier run. Rescans stay idempotent.
				continue
			} else if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			v := domain.Violation{
				ID:             uuid.NewString(),
				RegisteredIPID: match.assetID,
				FoundURL:       req.Target,
				FoundImageURL:  cand.Locator,
				Platform:       domain.PlatformFor(req.Target),
				Similarity:     match.similarity,
				DetectedAt:     now().UTC(),
				Status:         domain.ViolationPending,
			}
			if err := uc.Violations.PutViolation(v); err != nil {
				// Violations committed before the failure are retained;
				// the run itself aborts.
				return nil, err
			}
			committed = append(committed, v)
		}
	}

	return uc.commitRecord(req.Target, now().UTC(), len(candidates), committed)
}

// scoreCandidates runs the pure similarity computations in parallel.
// Commits stay serial in Execute so dedup and counts cannot race.
func (uc *ScanPipeline) scoreCandidates(ctx context.Context, candidates []domain.Candidate, assets []domain.RegisteredAsset, threshold int) ([][]candidateMatch, error) {
	matches := make([][]candidateMatch, len(candidates))
	g, ctx := errgroup.WithContext(ctx)
	limit := uc.Concurrency
	if limit <= 0 {
		limit = 4
	}
	g.SetLimit(limit)

	for i, cand := range candidates {
		if cand.Fingerprint == "" {
			// Unscorable candidate: skipped, never fatal to the run.
			continue
		}
		i, cand := i, cand
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, asset := range assets {
				score := uc.Match.Similarity(cand.Fingerprint, asset.ImageHash)
				if score > threshold {
					matches[i] = append(matches[i], candidateMatch{
						assetID:    asset.ID,
						similarity: clampScore(score),
					})
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (uc *ScanPipeline) commitRecord(target string, at time.Time, examined int, violations []domain.Violation) (*ScanResult, error) {
	rec := domain.ScanRecord{
		ID:                 uuid.NewString(),
		URL:                target,
		ScannedAt:          at,
		ImagesFound:        examined,
		ViolationsDetected: len(violations),
		Status:             domain.ScanCompleted,
	}
	if err := uc.Scans.PutScan(rec); err != nil {
		return nil, err
	}
	return &ScanResult{Record: rec, Violations: violations}, nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
