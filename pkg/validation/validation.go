package validation

import (
	"regexp"
	"strings"
)

var (
	// Video ids from the search provider are short URL-safe identifiers.
	videoIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
)

// ValidateVideoID validates an external video id.
func ValidateVideoID(videoID string) bool {
	return videoIDRegex.MatchString(videoID)
}

// ValidatePlaylistName validates a playlist name.
func ValidatePlaylistName(name string) bool {
	name = strings.TrimSpace(name)
	return len(name) >= 1 && len(name) <= 255
}

// SanitizeString removes potentially harmful characters
func SanitizeString(input string) string {
	// Basic sanitization
	input = strings.TrimSpace(input)
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")
	return input
}
