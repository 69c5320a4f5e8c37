package main

import (
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tubesum/internal/config"
)

func newAskCmd(root *rootFlags) *cobra.Command {
	var (
		mf         modelFlags
		outputPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "ask <youtube-url|video-id> <question>",
		Short: "Answer a question from a video's transcript",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := loadApp(cmd, root, func(cfg *config.Config) { mf.apply(cmd, cfg) })
			if err != nil {
				return err
			}
			// output.path in the config is meant for summaries.
			a.cfg.Output.Path = ""
			opts, err := a.outputOptions(cmd, format, outputPath)
			if err != nil {
				return err
			}

			p, err := a.pipeline(ctx, true)
			if err != nil {
				return err
			}

			answer, err := p.Answer(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if !answer.Found {
				a.logger.Info(ctx, "No chunk of %s answered the question", answer.VideoID)
			}

			return a.writer().Answer(ctx, answer, opts)
		},
	}

	mf.register(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the answer to this file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json or docx")

	return cmd
}
