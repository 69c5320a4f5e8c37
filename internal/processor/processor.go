package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nguyentantai21042004/tubesum/internal/domain"
	"github.com/nguyentantai21042004/tubesum/internal/output"
)

// Process reads the video references in listPath, summarizes each one into
// the output directory and archives the list file. A failed video is logged
// and does not stop the others.
func (p *implProcessor) Process(ctx context.Context, listPath string) error {
	startTime := time.Now()
	listName := filepath.Base(listPath)

	content, err := os.ReadFile(listPath)
	if err != nil {
		return fmt.Errorf("read list file: %w", err)
	}

	ids, invalid := extractRefs(string(content))
	for _, ref := range invalid {
		p.logger.Warn(ctx, "Skipping %q in %s: not a YouTube video reference", ref, listName)
	}
	if len(ids) == 0 {
		p.logger.Warn(ctx, "No video references found in %s", listName)
		if err := p.moveToArchived(ctx, listPath); err != nil {
			p.logger.Warn(ctx, "Failed to archive %s: %v", listName, err)
		}
		return nil
	}

	if err := os.MkdirAll(p.cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p.logger.Info(ctx, "Processing %s: %d video(s)", listName, len(ids))

	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)
	for i, id := range ids {
		if err := p.sem.Acquire(ctx); err != nil {
			failed.Add(int32(len(ids) - i))
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer p.sem.Release()

			p.logger.Info(ctx, "[%d/%d] Summarizing %s", i+1, len(ids), id)
			if err := p.summarizeOne(ctx, id); err != nil {
				p.logger.Error(ctx, "Failed to summarize %s (%s): %v", id, domain.Kind(err), err)
				failed.Add(1)
			}
		}()
	}
	wg.Wait()

	// An interrupted list stays in the input dir so the next run picks it up again.
	if err := ctx.Err(); err != nil {
		p.logger.Warn(ctx, "Interrupted while processing %s, leaving it in %s", listName, filepath.Dir(listPath))
		return fmt.Errorf("process %s: %w", listName, err)
	}

	if err := p.moveToArchived(ctx, listPath); err != nil {
		p.logger.Warn(ctx, "Failed to archive %s: %v", listName, err)
	}

	n := int(failed.Load())
	p.logger.Info(ctx, "Finished %s in %s: %d success, %d failed", listName, time.Since(startTime).Round(time.Millisecond), len(ids)-n, n)
	if n > 0 {
		return fmt.Errorf("%d of %d videos in %s failed", n, len(ids), listName)
	}
	return nil
}

func (p *implProcessor) summarizeOne(ctx context.Context, id string) error {
	summary, err := p.pipeline.Summarize(ctx, id)
	if err != nil {
		return err
	}

	outPath := filepath.Join(p.cfg.Output.Dir, id+p.format.Ext())
	if err := p.writer.Summary(ctx, summary, output.Options{Format: p.format, Path: outPath}); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	p.logger.Info(ctx, "[DONE] %s -> %s (%d chunk(s), %d+%d tokens)",
		id, outPath, summary.Partials, summary.Usage.PromptTokens, summary.Usage.CompletionTokens)
	return nil
}
