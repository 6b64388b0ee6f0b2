package domain

import "time"

type ScanStatus string

const (
	ScanCompleted ScanStatus = "completed"
	ScanRunning   ScanStatus = "scanning"
	ScanFailed    ScanStatus = "failed"
)

// ScanRecord summarizes one detection run. Written exactly once, after
// all per-candidate work completes; never mutated.
type ScanRecord struct {
	ID                 string     `json:"id"`
	URL                string     `json:"url"`
	ScannedAt          time.Time  `json:"scannedAt"`
	ImagesFound        int        `json:"imagesFound"`
	ViolationsDetected int        `json:"violationsDetected"`
	Status             ScanStatus `json:"status"`
}
