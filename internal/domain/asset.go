package domain

import "time"

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RegisteredAsset is a protected work. Immutable after registration
// except for administrative deletion.
type RegisteredAsset struct {
	ID          string     `json:"id"`
	ImageURL    string     `json:"imageUrl"`
	ImageName   string     `json:"imageName"`
	ImageHash   string     `json:"imageHash"`
	ContentHash string     `json:"contentHash,omitempty"`
	CreatorName string     `json:"creatorName"`
	LicenseType string     `json:"licenseType"`
	Description string     `json:"description,omitempty"`
	Tags        []string   `json:"tags"`
	UploadedAt  time.Time  `json:"uploadedAt"`
	FileSize    int64      `json:"fileSize"`
	Dimensions  Dimensions `json:"dimensions"`
}

// Fingerprint is the output of fingerprinting one image: the coarse
// perceptual hash used for similarity matching plus the exact content
// digest over the raw bytes.
type Fingerprint struct {
	PerceptualHash string
	ContentHash    string
	Width          int
	Height         int
	FileSize       int64
}
