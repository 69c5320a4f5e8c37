package transcript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/tubesum/internal/domain"
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/video"
	"github.com/nguyentantai21042004/tubesum/pkg/executor"
)

type ytdlpSource struct {
	binary    string
	executor  executor.Executor
	languages []string
	logger    logger.Logger
}

// Fetch downloads the video's subtitles (uploaded or auto-generated) as WebVTT
// into a scratch directory and parses them.
func (s *ytdlpSource) Fetch(ctx context.Context, videoID string) (*domain.Transcript, error) {
	dir, err := os.MkdirTemp("", "tubesum-subs-*")
	if err != nil {
		return nil, fmt.Errorf("%w: create temp dir: %w", domain.ErrTranscriptFetch, err)
	}
	defer os.RemoveAll(dir)

	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-format", "vtt",
		"--sub-langs", strings.Join(s.languages, ",") + ",-live_chat",
		"-o", "%(id)s.%(ext)s",
		video.WatchURL(videoID),
	}

	s.logger.Debug(ctx, "transcript: running %s for %s", s.binary, videoID)
	if _, err := s.executor.ExecuteInDir(ctx, dir, s.binary, args...); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTranscriptFetch, err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.vtt"))
	if err != nil {
		return nil, fmt.Errorf("%w: glob subtitles: %w", domain.ErrTranscriptFetch, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: yt-dlp found no subtitles for %s", domain.ErrTranscriptUnavailable, videoID)
	}

	path, lang := pickSubtitleFile(matches, s.languages)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrTranscriptFetch, filepath.Base(path), err)
	}

	segments := parseVTT(string(raw))
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: subtitles of %s are empty", domain.ErrTranscriptUnavailable, videoID)
	}

	return &domain.Transcript{
		VideoID:  videoID,
		Language: lang,
		Segments: segments,
	}, nil
}

// pickSubtitleFile chooses among "<id>.<lang>.vtt" files in language preference order.
func pickSubtitleFile(paths []string, langs []string) (string, string) {
	paths = append([]string(nil), paths...)
	sort.Strings(paths)

	byLang := make(map[string]string, len(paths))
	for _, p := range paths {
		byLang[subtitleLang(p)] = p
	}
	for _, lang := range langs {
		if p, ok := byLang[lang]; ok {
			return p, lang
		}
	}
	return paths[0], subtitleLang(paths[0])
}

func subtitleLang(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".vtt")
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return ""
}
