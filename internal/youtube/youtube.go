// Package youtube resolves YouTube video ids from URLs.
package youtube

import (
	"net/url"
	"regexp"
	"strings"
)

// maxURLLength bounds accepted input; real watch URLs are far shorter.
const maxURLLength = 2048

// idPattern is the exact video id format: 11 chars, alphanumeric plus - and _.
var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// validHosts are the only hostnames accepted as YouTube.
var validHosts = map[string]bool{
	"www.youtube.com": true,
	"youtube.com":     true,
	"m.youtube.com":   true,
	"youtu.be":        true,
}

// ValidID reports whether id matches the exact video id format.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// ExtractID extracts the video id from a YouTube URL. Only https URLs on
// known YouTube hosts are accepted; anything else returns ok=false.
func ExtractID(rawURL string) (string, bool) {
	if rawURL == "" || len(rawURL) > maxURLLength {
		return "", false
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	if u.Scheme != "https" || !validHosts[u.Hostname()] {
		return "", false
	}

	var id string
	if u.Hostname() == "youtu.be" {
		// https://youtu.be/VIDEO_ID
		id = firstSegment(strings.TrimPrefix(u.Path, "/"))
	} else {
		switch {
		case strings.HasPrefix(u.Path, "/watch"):
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"):
			id = firstSegment(strings.TrimPrefix(u.Path, "/embed/"))
		case strings.HasPrefix(u.Path, "/v/"):
			id = firstSegment(strings.TrimPrefix(u.Path, "/v/"))
		case strings.HasPrefix(u.Path, "/shorts/"):
			id = firstSegment(strings.TrimPrefix(u.Path, "/shorts/"))
		case strings.HasPrefix(u.Path, "/live/"):
			id = firstSegment(strings.TrimPrefix(u.Path, "/live/"))
		}
	}

	if !ValidID(id) {
		return "", false
	}
	return id, true
}

// IsValidURL reports whether rawURL resolves to a video id.
func IsValidURL(rawURL string) bool {
	_, ok := ExtractID(rawURL)
	return ok
}

// ThumbnailURL returns the medium-quality thumbnail URL for a video id,
// or "" if the id is not in the exact format.
func ThumbnailURL(id string) string {
	if !ValidID(id) {
		return ""
	}
	return "https://img.youtube.com/vi/" + id + "/mqdefault.jpg"
}

// firstSegment returns path up to the first slash.
func firstSegment(path string) string {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
