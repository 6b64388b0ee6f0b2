package domain

// Candidate is one already-fetched image sighting supplied to a scan:
// where the image lives and its precomputed perceptual fingerprint.
type Candidate struct {
	Locator     string `json:"locator"`
	Fingerprint string `json:"fingerprint"`
}
