package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tubesum/internal/config"
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/output"
	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
	"github.com/nguyentantai21042004/tubesum/internal/summarizer"
	"github.com/nguyentantai21042004/tubesum/internal/tokenizer"
	"github.com/nguyentantai21042004/tubesum/internal/transcript"
)

const defaultConfigPath = "config.yaml"

type rootFlags struct {
	configPath string
	logLevel   string
	source     string
	languages  []string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "tubesum",
		Short: "Summarize YouTube videos from their transcripts",
		Long: `tubesum fetches the transcript of a YouTube video, splits it into chunks that
fit the model's context window, summarizes each chunk and merges the results.

Supported model providers: openai, anthropic, gemini, ollama.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", defaultConfigPath, "Path to the YAML config file")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&flags.source, "source", "", "Transcript source: youtube or ytdlp")
	pf.StringSliceVar(&flags.languages, "lang", nil, "Preferred transcript languages, in order (e.g. en,de)")

	cmd.AddCommand(
		newSummarizeCmd(flags),
		newTranscriptCmd(flags),
		newAskCmd(flags),
		newWatchCmd(flags),
	)

	return cmd
}

// app holds what every subcommand needs after config and flags are resolved.
type app struct {
	cfg    *config.Config
	logger logger.Logger
}

// loadApp reads the config file, applies the root flags and then the
// command's own overrides, and builds the logger.
func loadApp(cmd *cobra.Command, flags *rootFlags, override func(*config.Config)) (*app, error) {
	path := flags.configPath
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.source != "" {
		cfg.Transcript.Source = flags.source
	}
	if len(flags.languages) > 0 {
		cfg.Transcript.Languages = flags.languages
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, os.Stderr),
	}, nil
}

// pipeline wires the transcript source, tokenizer and, when withClient is
// set, the model client into a Pipeline.
func (a *app) pipeline(ctx context.Context, withClient bool) (pipeline.Pipeline, error) {
	source, err := transcript.New(transcript.Options{
		Kind:      a.cfg.Transcript.Source,
		Languages: a.cfg.Transcript.Languages,
		Timeout:   a.cfg.Transcript.Timeout,
		YtDlpPath: a.cfg.Transcript.YtDlpPath,
	}, a.logger)
	if err != nil {
		return nil, err
	}

	var client summarizer.Client
	if withClient {
		client, err = summarizer.New(ctx, summarizer.Config{
			Provider:          a.cfg.Model.Provider,
			APIKey:            a.cfg.APIKey(),
			BaseURL:           a.cfg.BaseURL(),
			Timeout:           a.cfg.Model.Timeout,
			RequestsPerMinute: a.cfg.Model.RequestsPerMinute,
		})
		if err != nil {
			return nil, err
		}
	}

	return pipeline.New(source, client, tokenizer.ForProvider(a.cfg.Model.Provider, a.cfg.Model.Name), pipeline.Options{
		Model:          a.cfg.Model.Name,
		MaxContext:     a.cfg.Model.MaxContext,
		MaxTokens:      a.cfg.Model.MaxTokens,
		Temperature:    a.cfg.Model.Temperature,
		Detailed:       a.cfg.Pipeline.Detailed,
		Mode:           pipeline.Mode(a.cfg.Pipeline.Mode),
		MaxConcurrent:  a.cfg.Pipeline.MaxConcurrent,
		MergeThreshold: a.cfg.Pipeline.MergeThreshold,
	}, a.logger)
}

// outputOptions resolves the write target. Without an explicit format the
// extension of the output path decides, then the configured format.
func (a *app) outputOptions(cmd *cobra.Command, format, path string) (output.Options, error) {
	if path == "" {
		path = a.cfg.Output.Path
	}

	name := a.cfg.Output.Format
	switch {
	case cmd.Flags().Changed("format"):
		name = format
	case path != "" && filepath.Ext(path) != "":
		if _, err := output.ParseFormat(filepath.Ext(path)); err == nil {
			name = filepath.Ext(path)
		}
	}

	f, err := output.ParseFormat(name)
	if err != nil {
		return output.Options{}, err
	}
	if f == output.FormatDocx && path == "" {
		return output.Options{}, errors.New("docx output needs a file path (--output)")
	}
	return output.Options{Format: f, Path: path}, nil
}

func (a *app) writer() output.Writer {
	return output.New(os.Stdout, a.logger)
}
