package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/tubesum/internal/domain"
	"github.com/nguyentantai21042004/tubesum/internal/video"
)

var errDocxNeedsPath = errors.New("docx output requires a file path")

type summaryJSON struct {
	VideoID string       `json:"video_id"`
	URL     string       `json:"url"`
	Summary string       `json:"summary"`
	Points  []string     `json:"points"`
	Chunks  int          `json:"chunks"`
	Merged  bool         `json:"merged"`
	Usage   domain.Usage `json:"usage"`
}

type segmentJSON struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

type transcriptJSON struct {
	VideoID  string        `json:"video_id"`
	Language string        `json:"language"`
	Segments []segmentJSON `json:"segments"`
}

type answerJSON struct {
	VideoID  string       `json:"video_id"`
	Question string       `json:"question"`
	Answer   string       `json:"answer"`
	Found    bool         `json:"found"`
	Usage    domain.Usage `json:"usage"`
}

func (w *implWriter) Summary(ctx context.Context, s *domain.Summary, opts Options) error {
	title := "Summary of " + s.VideoID

	switch opts.Format {
	case FormatDocx:
		if opts.Path == "" {
			return errDocxNeedsPath
		}
		if err := ensureDir(opts.Path); err != nil {
			return err
		}
		if err := markdownToDocx(title, s.Text, opts.Path); err != nil {
			return fmt.Errorf("write docx: %w", err)
		}
		w.logger.Info(ctx, "Wrote %s", opts.Path)
		return nil

	case FormatJSON:
		return w.writeJSON(ctx, summaryJSON{
			VideoID: s.VideoID,
			URL:     video.WatchURL(s.VideoID),
			Summary: s.Text,
			Points:  bulletPoints(s.Text),
			Chunks:  s.Partials,
			Merged:  s.Merged,
			Usage:   s.Usage,
		}, opts.Path)

	case FormatMarkdown:
		return w.write(ctx, []byte(w.markdown(title, video.WatchURL(s.VideoID), s.Text)), opts.Path)

	default:
		return w.write(ctx, []byte(strings.TrimSpace(s.Text)+"\n"), opts.Path)
	}
}

func (w *implWriter) Transcript(ctx context.Context, tr *domain.Transcript, opts Options) error {
	switch opts.Format {
	case FormatDocx:
		if opts.Path == "" {
			return errDocxNeedsPath
		}
		if err := ensureDir(opts.Path); err != nil {
			return err
		}
		if err := transcriptToDocx("Transcript of "+tr.VideoID, tr.Segments, opts.Timestamps, opts.Path); err != nil {
			return fmt.Errorf("write docx: %w", err)
		}
		w.logger.Info(ctx, "Wrote %s", opts.Path)
		return nil

	case FormatJSON:
		out := transcriptJSON{VideoID: tr.VideoID, Language: tr.Language, Segments: make([]segmentJSON, 0, len(tr.Segments))}
		for _, seg := range tr.Segments {
			out.Segments = append(out.Segments, segmentJSON{
				Start:    seg.Start.Seconds(),
				Duration: seg.Duration.Seconds(),
				Text:     seg.Text,
			})
		}
		return w.writeJSON(ctx, out, opts.Path)

	case FormatMarkdown:
		body := tr.Text()
		if opts.Timestamps {
			body = strings.Join(timestampedLines(tr.Segments), "\n\n")
		}
		return w.write(ctx, []byte(w.markdown("Transcript of "+tr.VideoID, video.WatchURL(tr.VideoID), body)), opts.Path)

	default:
		body := tr.Text()
		if opts.Timestamps {
			body = strings.Join(timestampedLines(tr.Segments), "\n")
		}
		return w.write(ctx, []byte(body+"\n"), opts.Path)
	}
}

func (w *implWriter) Answer(ctx context.Context, a *domain.Answer, opts Options) error {
	text := a.Text
	if !a.Found {
		text = "No answer found in the video transcript."
	}

	switch opts.Format {
	case FormatDocx:
		if opts.Path == "" {
			return errDocxNeedsPath
		}
		if err := ensureDir(opts.Path); err != nil {
			return err
		}
		if err := markdownToDocx(a.Question, text, opts.Path); err != nil {
			return fmt.Errorf("write docx: %w", err)
		}
		w.logger.Info(ctx, "Wrote %s", opts.Path)
		return nil

	case FormatJSON:
		return w.writeJSON(ctx, answerJSON{
			VideoID:  a.VideoID,
			Question: a.Question,
			Answer:   a.Text,
			Found:    a.Found,
			Usage:    a.Usage,
		}, opts.Path)

	case FormatMarkdown:
		return w.write(ctx, []byte(w.markdown(a.Question, video.WatchURL(a.VideoID), text)), opts.Path)

	default:
		return w.write(ctx, []byte(text+"\n"), opts.Path)
	}
}

func (w *implWriter) markdown(title, link, body string) string {
	return fmt.Sprintf("# %s\n\n_%s_ - <%s>\n\n%s\n",
		title,
		w.now().Format("2006-01-02 15:04"),
		link,
		strings.TrimSpace(body),
	)
}

func (w *implWriter) writeJSON(ctx context.Context, v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return w.write(ctx, append(data, '\n'), path)
}

func (w *implWriter) write(ctx context.Context, data []byte, path string) error {
	if path == "" {
		if _, err := w.stdout.Write(data); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.logger.Info(ctx, "Wrote %s", path)
	return nil
}

func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return nil
}
