package transcript

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/tubesum/internal/domain"
)

var (
	cueTimingRe = regexp.MustCompile(`^((?:\d{2,}:)?\d{2}:\d{2}\.\d{3})\s*-->\s*((?:\d{2,}:)?\d{2}:\d{2}\.\d{3})`)
	vttTagRe    = regexp.MustCompile(`<[^>]+>`)
)

// parseVTT turns WebVTT cues into segments. Inline timing and styling tags are
// stripped, and the rolling lines that auto-generated captions repeat from the
// previous cue are dropped.
func parseVTT(raw string) []domain.Segment {
	var (
		segments []domain.Segment
		cur      *domain.Segment
		lines    []string
		prevLine string
	)

	flush := func() {
		if cur != nil && len(lines) > 0 {
			cur.Text = strings.Join(lines, " ")
			segments = append(segments, *cur)
		}
		cur, lines = nil, nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")

		if m := cueTimingRe.FindStringSubmatch(line); m != nil {
			flush()
			start, end := parseVTTTime(m[1]), parseVTTTime(m[2])
			dur := end - start
			if dur < 0 {
				dur = 0
			}
			cur = &domain.Segment{Start: start, Duration: dur}
			continue
		}

		if cur == nil {
			// header, NOTE/STYLE blocks, cue identifiers
			continue
		}

		if line == "" {
			flush()
			continue
		}

		text := strings.Join(strings.Fields(vttTagRe.ReplaceAllString(line, "")), " ")
		text = unescapeVTT(text)
		if text == "" || text == prevLine {
			continue
		}
		lines = append(lines, text)
		prevLine = text
	}
	flush()

	return segments
}

func parseVTTTime(s string) time.Duration {
	clock, frac, _ := strings.Cut(s, ".")
	var total time.Duration
	for _, p := range strings.Split(clock, ":") {
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0
		}
		total = total*60 + time.Duration(v)*time.Second
	}
	if frac != "" {
		ms, err := strconv.Atoi(frac)
		if err != nil {
			return 0
		}
		total += time.Duration(ms) * time.Millisecond
	}
	return total
}

var vttEntities = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&nbsp;", " ", "&#39;", "'", "&quot;", `"`)

func unescapeVTT(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return strings.TrimSpace(vttEntities.Replace(s))
}
