package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "lofigen <video> <audio>",
		Short:        "Loop a video clip over an audio track into a fixed-duration mix",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], args[1])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.PersistentFlags().String("config", "", "Config file (default: lofigen.yaml)")
	root.Flags().Float64("duration", 600, "Output duration in seconds (max 21600)")
	root.Flags().String("out", "", "Output root directory (default: discovered)")

	// Tool-path overrides (internal)
	root.PersistentFlags().String("ffmpeg", "", "ffmpeg binary path")
	root.PersistentFlags().String("ffprobe", "", "ffprobe binary path")
	root.PersistentFlags().String("ytdlp", "", "yt-dlp binary path")
	_ = root.PersistentFlags().MarkHidden("ffmpeg")
	_ = root.PersistentFlags().MarkHidden("ffprobe")
	_ = root.PersistentFlags().MarkHidden("ytdlp")

	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
