package source

import (
	"context"

	"github.com/Uchiha-Network/Story-Guard/internal/domain"
)

// Static returns a fixed candidate list for every target. Used by the
// CLI and demos in place of a real crawler, which sits outside this
// system behind the CandidateSource boundary.
type Static struct {
	Candidates []domain.Candidate
}

func NewStatic(candidates []domain.Candidate) *Static {
	return &Static{Candidates: candidates}
}

func (s *Static) Discover(_ context.Context, _ string) ([]domain.Candidate, error) {
	out := make([]domain.Candidate, len(s.Candidates))
	copy(out, s.Candidates)
	return out, nil
}
