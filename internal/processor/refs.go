package processor

import (
	"strings"

	"mvdan.cc/xurls/v2"

	"github.com/nguyentantai21042004/tubesum/internal/video"
)

var urlFinder = xurls.Relaxed()

// extractRefs returns the unique video ids referenced in text, in order of
// first appearance, plus the references that could not be resolved. URLs are
// found anywhere in free text; a line holding a single token is also tried
// as a bare id. Lines starting with '#' are comments.
func extractRefs(text string) (ids []string, invalid []string) {
	seen := make(map[string]bool)
	add := func(ref string) {
		id, err := video.Parse(ref)
		if err != nil {
			invalid = append(invalid, ref)
			return
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if urls := urlFinder.FindAllString(line, -1); len(urls) > 0 {
			for _, u := range urls {
				add(u)
			}
			continue
		}

		if fields := strings.Fields(line); len(fields) == 1 {
			add(fields[0])
		}
	}
	return ids, invalid
}
