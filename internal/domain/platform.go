package domain

import "strings"

// PlatformFor maps a sighting URL to a known platform label, defaulting
// to the generic "Website".
func PlatformFor(url string) string {
	switch {
	case strings.Contains(url, "instagram.com"):
		return "Instagram"
	case strings.Contains(url, "twitter.com"):
		return "Twitter"
	case strings.Contains(url, "pinterest.com"):
		return "Pinterest"
	case strings.Contains(url, "facebook.com"):
		return "Facebook"
	}
	return "Website"
}
