package content

import (
	"net/url"
	"regexp"
	"strings"
)

// srcAttrPattern extracts the src attribute value from a pasted iframe/HTML fragment.
var srcAttrPattern = regexp.MustCompile(`(?i)src=["']([^"']+)["']`)

// ExtractYouTubeID extracts a canonical video identifier from user input.
//
// Accepted shapes: youtu.be/<id>, youtube.com/watch?v=<id>,
// youtube.com/shorts/<id>, youtube.com/embed/<id>, or an HTML fragment whose
// src attribute holds one of those URLs. Returns ok=false when no identifier
// is recognized; that is an expected outcome for arbitrary input, not a
// fault. The input is never mutated.
func ExtractYouTubeID(input string) (string, bool) {
	text := strings.TrimSpace(input)

	// A pasted embed snippet carries the URL in its src attribute
	if m := srcAttrPattern.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	u, err := url.Parse(text)
	if err != nil || u.Host == "" {
		return "", false
	}

	if strings.Contains(u.Hostname(), "youtu.be") {
		if id := strings.TrimPrefix(u.Path, "/"); id != "" {
			return id, true
		}
		return "", false
	}

	switch {
	case u.Path == "/watch":
		if id := u.Query().Get("v"); id != "" {
			return id, true
		}
	case strings.HasPrefix(u.Path, "/shorts/"):
		if id := strings.TrimPrefix(u.Path, "/shorts/"); id != "" {
			return id, true
		}
	case strings.HasPrefix(u.Path, "/embed/"):
		if id := strings.TrimPrefix(u.Path, "/embed/"); id != "" {
			return id, true
		}
	}

	return "", false
}

// WatchURL returns the canonical watch URL for a video identifier.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(id)
}
