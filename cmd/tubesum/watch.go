package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tubesum/internal/config"
	"github.com/nguyentantai21042004/tubesum/internal/processor"
	"github.com/nguyentantai21042004/tubesum/internal/watcher"
)

func newWatchCmd(root *rootFlags) *cobra.Command {
	var (
		mf        modelFlags
		input     string
		archived  string
		outputDir string
		format    string
		parallel  int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Summarize every video listed in files dropped into the input directory",
		Long: `watch monitors the input directory for new .txt, .url or .list files. Every
YouTube URL or bare video id in such a file is summarized into the output
directory as <video-id>.<ext>, and the file is then moved to the archive
directory. Files already present at startup are processed first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := loadApp(cmd, root, func(cfg *config.Config) {
				mf.apply(cmd, cfg)
				fl := cmd.Flags()
				if fl.Changed("input") {
					cfg.Watch.Input = input
				}
				if fl.Changed("archived") {
					cfg.Watch.Archived = archived
				}
				if fl.Changed("output-dir") {
					cfg.Output.Dir = outputDir
				}
				if fl.Changed("format") {
					cfg.Output.Format = format
				}
				if fl.Changed("parallel") {
					cfg.Watch.MaxConcurrent = parallel
				}
			})
			if err != nil {
				return err
			}
			cfg, log := a.cfg, a.logger

			log.Info(ctx, "========================================")
			log.Info(ctx, "tubesum watch")
			log.Info(ctx, "========================================")
			log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
			log.Info(ctx, "Model: %s/%s (context %d, max tokens %d)",
				cfg.Model.Provider, cfg.Model.Name, cfg.Model.MaxContext, cfg.Model.MaxTokens)
			log.Info(ctx, "Transcript source: %s %v", cfg.Transcript.Source, cfg.Transcript.Languages)

			if err := ensureDirectories(cfg); err != nil {
				return err
			}

			p, err := a.pipeline(ctx, true)
			if err != nil {
				return err
			}
			proc, err := processor.New(cfg, p, a.writer(), log)
			if err != nil {
				return err
			}

			w, err := watcher.New(cfg.Watch.Input, proc.Process, log, watcher.Options{
				MaxConcurrent: cfg.Watch.MaxConcurrent,
			})
			if err != nil {
				return err
			}
			defer w.Stop()

			log.Info(ctx, "Monitoring: %s", cfg.Watch.Input)
			log.Info(ctx, "Output: %s (%s)", cfg.Output.Dir, cfg.Output.Format)
			log.Info(ctx, "Archive: %s", cfg.Watch.Archived)
			log.Info(ctx, "Concurrent: %d videos at once", cfg.Watch.MaxConcurrent)
			log.Info(ctx, "Press Ctrl+C to stop")
			log.Info(ctx, "========================================")

			err = w.Start(ctx)
			if errors.Is(err, context.Canceled) {
				log.Info(ctx, "Shutdown signal received, watcher stopped")
				return nil
			}
			return err
		},
	}

	mf.register(cmd)
	fl := cmd.Flags()
	fl.StringVar(&input, "input", "", "Directory to watch for list files")
	fl.StringVar(&archived, "archived", "", "Directory processed list files are moved to")
	fl.StringVar(&outputDir, "output-dir", "", "Directory summaries are written to")
	fl.StringVarP(&format, "format", "f", "", "Output format: text, markdown, json or docx")
	fl.IntVarP(&parallel, "parallel", "p", 0, "Videos summarized at once")

	return cmd
}

// ensureDirectories creates the watch directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Watch.Input,
		cfg.Watch.Archived,
		cfg.Output.Dir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
