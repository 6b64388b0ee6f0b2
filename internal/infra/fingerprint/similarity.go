package fingerprint

import "math"

type Matcher struct{}

func NewMatcher() *Matcher {
	return &Matcher{}
}

// Similarity scores two fingerprints as the rounded percentage of
// index-aligned characters that agree. Fingerprints of different
// lengths score 0: a malformed fingerprint earns no partial credit.
// The comparison is over hex characters, not the underlying bit
// vector, so the contract stays stable across rescans.
func (m *Matcher) Similarity(a, b string) int {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	matches := 0
	for i := 0; i < len(a); i++ {
		if a[i] == b[i] {
			matches++
		}
	}
	return int(math.Round(float64(matches) / float64(len(a)) * 100))
}
