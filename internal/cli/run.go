package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/ximi-ai/lofigen/internal/config"
	"github.com/ximi-ai/lofigen/internal/pipeline"
)

// runTimeout bounds one whole invocation; the external tools themselves have
// no per-call timeout.
const runTimeout = 12 * time.Hour

func run(cmd *cobra.Command, videoRef, audioRef string) error {
	duration, _ := cmd.Flags().GetFloat64("duration")
	outRoot, _ := cmd.Flags().GetString("out")

	cfg, err := baseConfig(cmd)
	if err != nil {
		return err
	}
	if outRoot != "" {
		cfg.OutputRoot = outRoot
	}
	cfg.VideoRef = videoRef
	cfg.AudioRef = audioRef
	cfg.DurationSec = duration
	cfg.Logf = log.Printf

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	art, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), art.Path)
	return nil
}

// baseConfig merges the config file, environment, and tool-path flags into a
// pipeline config without references or duration.
func baseConfig(cmd *cobra.Command) (pipeline.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	fileCfg, err := config.Load(configPath)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("config: %w", err)
	}

	cfg := pipeline.Config{
		OutputRoot:  fileCfg.OutputRoot,
		FFmpegPath:  fileCfg.FFmpegPath,
		FFprobePath: fileCfg.FFprobePath,
		YtdlpPath:   fileCfg.YtdlpPath,
	}
	if v, _ := cmd.Flags().GetString("ffmpeg"); v != "" {
		cfg.FFmpegPath = v
	}
	if v, _ := cmd.Flags().GetString("ffprobe"); v != "" {
		cfg.FFprobePath = v
	}
	if v, _ := cmd.Flags().GetString("ytdlp"); v != "" {
		cfg.YtdlpPath = v
	}
	return cfg, nil
}
