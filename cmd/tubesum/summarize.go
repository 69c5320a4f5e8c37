package main

import (
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tubesum/internal/config"
)

// modelFlags are the model and pipeline overrides shared by the commands
// that call the model.
type modelFlags struct {
	provider      string
	model         string
	maxContext    int
	maxTokens     int
	temperature   float64
	detailed      bool
	concurrent    bool
	maxConcurrent int
}

func (f *modelFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.provider, "provider", "", "Model provider: openai, anthropic, gemini or ollama")
	fl.StringVarP(&f.model, "model", "m", "", "Model name")
	fl.IntVarP(&f.maxContext, "max-context", "c", 0, "Model context window, in tokens")
	fl.IntVar(&f.maxTokens, "max-tokens", 0, "Completion tokens requested per call")
	fl.Float64Var(&f.temperature, "temperature", 0, "Sampling temperature")
	fl.BoolVarP(&f.detailed, "detailed", "d", false, "Produce a detailed summary instead of a concise one")
	fl.BoolVarP(&f.concurrent, "concurrent", "a", false, "Summarize chunks concurrently")
	fl.IntVar(&f.maxConcurrent, "max-concurrent", 0, "Maximum in-flight model calls in concurrent mode (0 = unbounded)")
}

// apply copies the flags the user set onto cfg.
func (f *modelFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("provider") {
		if f.provider != cfg.Model.Provider && !fl.Changed("model") {
			cfg.Model.Name = ""
		}
		cfg.Model.Provider = f.provider
	}
	if fl.Changed("model") {
		cfg.Model.Name = f.model
	}
	if fl.Changed("max-context") {
		cfg.Model.MaxContext = f.maxContext
	}
	if fl.Changed("max-tokens") {
		cfg.Model.MaxTokens = f.maxTokens
	}
	if fl.Changed("temperature") {
		cfg.Model.Temperature = f.temperature
	}
	if fl.Changed("detailed") {
		cfg.Pipeline.Detailed = f.detailed
	}
	if fl.Changed("concurrent") {
		cfg.Pipeline.Mode = "sequential"
		if f.concurrent {
			cfg.Pipeline.Mode = "concurrent"
		}
	}
	if fl.Changed("max-concurrent") {
		cfg.Pipeline.MaxConcurrent = f.maxConcurrent
	}
}

func newSummarizeCmd(root *rootFlags) *cobra.Command {
	var (
		mf         modelFlags
		outputPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "summarize <youtube-url|video-id>",
		Short: "Fetch a video's transcript and summarize it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := loadApp(cmd, root, func(cfg *config.Config) { mf.apply(cmd, cfg) })
			if err != nil {
				return err
			}
			opts, err := a.outputOptions(cmd, format, outputPath)
			if err != nil {
				return err
			}
			p, err := a.pipeline(ctx, true)
			if err != nil {
				return err
			}

			summary, err := p.Summarize(ctx, args[0])
			if err != nil {
				return err
			}

			a.logger.Info(ctx, "Summarized %s: %d chunk(s), merged=%t, %d prompt + %d completion tokens",
				summary.VideoID, summary.Partials, summary.Merged,
				summary.Usage.PromptTokens, summary.Usage.CompletionTokens)

			return a.writer().Summary(ctx, summary, opts)
		},
	}

	mf.register(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the summary to this file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json or docx")

	return cmd
}
