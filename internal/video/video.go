package video

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/tubesum/internal/domain"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var youtubeHosts = map[string]bool{
	"youtube.com":              true,
	"www.youtube.com":          true,
	"m.youtube.com":            true,
	"music.youtube.com":        true,
	"youtube-nocookie.com":     true,
	"www.youtube-nocookie.com": true,
	"youtu.be":                 true,
}

// path prefixes that carry the id as the next segment
var idPathPrefixes = []string{"shorts", "embed", "live", "v"}

// Parse resolves a video id from a YouTube URL or a bare id.
func Parse(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: the video URL or ID is empty", domain.ErrInvalidVideoReference)
	}

	if !looksLikeURL(raw) {
		return validate(raw)
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: parse url: %w", domain.ErrInvalidVideoReference, err)
	}

	host := strings.ToLower(u.Hostname())
	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })

	if host == "youtu.be" {
		if len(segments) == 0 {
			return "", fmt.Errorf("%w: the video URL is malformed, expected id in path", domain.ErrInvalidVideoReference)
		}
		return validate(segments[0])
	}

	if v := u.Query().Get("v"); v != "" {
		return validate(v)
	}

	if len(segments) >= 2 {
		for _, prefix := range idPathPrefixes {
			if segments[0] == prefix {
				return validate(segments[1])
			}
		}
	}

	return "", fmt.Errorf("%w: the video URL is malformed, expected 'v' in query string", domain.ErrInvalidVideoReference)
}

// WatchURL returns the canonical watch page URL for id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(id)
}

func looksLikeURL(raw string) bool {
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return true
	}
	for host := range youtubeHosts {
		if strings.HasPrefix(lower, host+"/") {
			return true
		}
	}
	return false
}

func validate(id string) (string, error) {
	if !idPattern.MatchString(id) {
		return "", fmt.Errorf("%w: malformed video id %q", domain.ErrInvalidVideoReference, id)
	}
	return id, nil
}
