package output

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nguyentantai21042004/tubesum/internal/domain"
)

var listMarkerRe = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s+`)

// bulletPoints splits a bulleted summary into its items, dropping list markers.
// Lines without a marker are kept as items of their own.
func bulletPoints(text string) []string {
	points := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(listMarkerRe.ReplaceAllString(strings.TrimSpace(line), ""))
		if line == "" {
			continue
		}
		points = append(points, line)
	}
	return points
}

func timestampedLines(segments []domain.Segment) []string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		text := strings.Join(strings.Fields(seg.Text), " ")
		if text == "" {
			continue
		}
		lines = append(lines, "["+formatTimestamp(seg.Start)+"] "+text)
	}
	return lines
}

// formatTimestamp renders d as m:ss, or h:mm:ss past the hour.
func formatTimestamp(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
