package main

import (
	"github.com/spf13/cobra"
)

func newTranscriptCmd(root *rootFlags) *cobra.Command {
	var (
		outputPath string
		format     string
		timestamps bool
	)

	cmd := &cobra.Command{
		Use:   "transcript <youtube-url|video-id>",
		Short: "Fetch and print a video's transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := loadApp(cmd, root, nil)
			if err != nil {
				return err
			}
			a.cfg.Output.Path = ""
			opts, err := a.outputOptions(cmd, format, outputPath)
			if err != nil {
				return err
			}
			opts.Timestamps = timestamps

			p, err := a.pipeline(ctx, false)
			if err != nil {
				return err
			}

			tr, err := p.Transcript(ctx, args[0])
			if err != nil {
				return err
			}
			a.logger.Debug(ctx, "Fetched %d segment(s) for %s (%s)", len(tr.Segments), tr.VideoID, tr.Language)

			return a.writer().Transcript(ctx, tr, opts)
		},
	}

	cmd.Flags().BoolVar(&timestamps, "timestamps", false, "Prefix each caption line with its start time")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the transcript to this file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json or docx")

	return cmd
}
