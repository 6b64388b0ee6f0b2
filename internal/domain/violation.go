package domain

import "time"

type ViolationStatus string

const (
	ViolationPending  ViolationStatus = "pending"
	ViolationResolved ViolationStatus = "resolved"
	ViolationDisputed ViolationStatus = "disputed"
)

func (s ViolationStatus) Valid() bool {
	switch s {
	case ViolationPending, ViolationResolved, ViolationDisputed:
		return true
	}
	return false
}

// Violation is one detected match between a registered asset and an
// external sighting. At most one violation may exist per
// (RegisteredIPID, FoundURL) pair regardless of status.
type Violation struct {
	ID             string          `json:"id"`
	RegisteredIPID string          `json:"registeredIpId"`
	FoundURL       string          `json:"foundUrl"`
	FoundImageURL  string          `json:"foundImageUrl"`
	Platform       string          `json:"platform"`
	Similarity     int             `json:"similarity"`
	DetectedAt     time.Time       `json:"detectedAt"`
	Status         ViolationStatus `json:"status"`
	Notes          string          `json:"notes,omitempty"`
}
