package usecase

import (
	"context"

	"github.com/Uchiha-Network/Story-Guard/internal/domain"
)

type AssetRepository interface {
	PutAsset(asset domain.RegisteredAsset) error
	GetAsset(id string) (*domain.RegisteredAsset, error)
	ListAssets() []domain.RegisteredAsset
	DeleteAsset(id string) error
}

type ViolationRepository interface {
	PutViolation(v domain.Violation) error
	ListViolations() []domain.Violation
	ViolationsByStatus(status domain.ViolationStatus) []domain.Violation
	FindViolation(assetID, foundURL string) (*domain.Violation, error)
	UpdateViolationStatus(id string, status domain.ViolationStatus) error
}

type ScanRepository interface {
	PutScan(rec domain.ScanRecord) error
	ListScans() []domain.ScanRecord
}

// Fingerprinter turns raw image bytes into a fingerprint or fails with
// domain.ErrDecode.
type Fingerprinter interface {
	Generate(raw []byte) (domain.Fingerprint, error)
}

// Matcher scores two fingerprints on a 0-100 scale.
type Matcher interface {
	Similarity(a, b string) int
}

// CandidateSource supplies the already-fetched image sightings for a
// target. Real crawling lives behind this boundary.
type CandidateSource interface {
	Discover(ctx context.Context, target string) ([]domain.Candidate, error)
}

// AssetRegistrar mirrors a registration to an external ledger. Failures
// are reported but never block local registration.
type AssetRegistrar interface {
	Register(ctx context.Context, asset domain.RegisteredAsset) (RegistrarReceipt, error)
}

type RegistrarReceipt struct {
	IPAssetID string
	TxHash    string
	Network   string
}
