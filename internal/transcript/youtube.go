package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/nguyentantai21042004/tubesum/internal/domain"
	"github.com/nguyentantai21042004/tubesum/internal/logger"
)

const (
	defaultBaseURL = "https://www.youtube.com"

	playerResponseMarker = "ytInitialPlayerResponse = "

	maxWatchPageBytes = 6 << 20
	maxCaptionBytes   = 2 << 20

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

var errBodyTooLarge = errors.New("response body too large")

type youtubeSource struct {
	baseURL      string
	client       *http.Client
	languages    []string
	captionLimit int64
	logger       logger.Logger
}

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

type timedText struct {
	Lines []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Text  string `xml:",chardata"`
	} `xml:"text"`
}

// Fetch scrapes the watch page player response, picks a caption track and
// downloads its timedtext XML.
func (s *youtubeSource) Fetch(ctx context.Context, videoID string) (*domain.Transcript, error) {
	page, err := s.get(ctx, s.baseURL+"/watch?v="+url.QueryEscape(videoID), maxWatchPageBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: watch page: %w", domain.ErrTranscriptFetch, err)
	}

	player, err := extractPlayerResponse(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTranscriptFetch, err)
	}

	var tracks []captionTrack
	if player.Captions != nil {
		tracks = player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	}
	if len(tracks) == 0 {
		if player.PlayabilityStatus != nil && player.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrTranscriptUnavailable, player.PlayabilityStatus.Reason)
		}
		return nil, fmt.Errorf("%w: no captions for video %s", domain.ErrTranscriptUnavailable, videoID)
	}

	track, ok := pickBestTrack(tracks, s.languages)
	if !ok {
		return nil, fmt.Errorf("%w: all caption tracks of %s require a PoToken", domain.ErrTranscriptUnavailable, videoID)
	}
	s.logger.Debug(ctx, "transcript: using %s track (kind=%q) for %s", track.LanguageCode, track.Kind, videoID)

	body, err := s.get(ctx, track.BaseURL, s.captionLimit)
	if errors.Is(err, errBodyTooLarge) {
		return nil, fmt.Errorf("%w: caption track too large: %w", domain.ErrTranscriptFetch, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: timedtext: %w", domain.ErrTranscriptFetch, err)
	}

	segments, err := parseTimedText(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTranscriptFetch, err)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: caption track of %s is empty", domain.ErrTranscriptUnavailable, videoID)
	}

	return &domain.Transcript{
		VideoID:  videoID,
		Language: track.LanguageCode,
		Segments: segments,
	}, nil
}

func (s *youtubeSource) get(ctx context.Context, rawURL string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	// skips the EU consent interstitial
	req.Header.Set("Cookie", "CONSENT=YES+1")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w (over %d bytes)", errBodyTooLarge, limit)
	}
	return body, nil
}

// extractPlayerResponse finds the inline script that assigns
// ytInitialPlayerResponse and decodes its JSON object.
func extractPlayerResponse(page []byte) (*playerResponse, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}

	var raw []byte
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		idx := strings.Index(text, playerResponseMarker)
		if idx < 0 {
			return true
		}
		raw = extractJSON([]byte(text[idx+len(playerResponseMarker):]))
		return raw == nil
	})
	if raw == nil {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}

	var pr playerResponse
	if err := json.Unmarshal(raw, &pr); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return &pr, nil
}

// extractJSON returns the JSON object starting at b[0] by tracking brace depth
// outside of string literals.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}

	depth := 0
	inStr, escaped := false, false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}

		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}

// needsPoToken reports whether a caption track can only be fetched by a browser.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack prefers a manual track in one of langs, then an auto-generated
// one, then any English track, then the first usable track.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if t.BaseURL != "" && !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}

	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

func parseTimedText(body []byte) ([]domain.Segment, error) {
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segments := make([]domain.Segment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := cleanCaption(line.Text)
		if text == "" {
			continue
		}
		segments = append(segments, domain.Segment{
			Text:     text,
			Start:    parseSeconds(line.Start),
			Duration: parseSeconds(line.Dur),
		})
	}
	return segments, nil
}

// cleanCaption decodes the HTML entities left in caption text and drops any markup.
func cleanCaption(s string) string {
	if strings.ContainsAny(s, "&<") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

func parseSeconds(s string) time.Duration {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0
	}
	return time.Duration(math.Round(f * float64(time.Second)))
}
