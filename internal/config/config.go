// Package config holds runtime settings sourced from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// OutputRoot is where session directories are created. Empty means
	// "discover": walk upward from the executable for a directory named
	// output, falling back to outputs beside the executable.
	OutputRoot string `yaml:"output_root"`

	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
	YtdlpPath   string `yaml:"ytdlp_path"`

	// ServeAddr is the listen address for `lofigen serve`.
	ServeAddr string `yaml:"serve_addr"`
}

func Default() *Config {
	return &Config{
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
		YtdlpPath:   "yt-dlp",
		ServeAddr:   ":8080",
	}
}

// Load reads the config file at path (or the first standard location when
// path is empty), then applies LOFIGEN_* environment overrides. A missing
// file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = findFile()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func findFile() string {
	locations := []string{
		"./lofigen.yaml",
		"./lofigen.yml",
		filepath.Join(os.Getenv("HOME"), ".lofigen", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".lofigen", "config.yml"),
	}
	for _, p := range locations {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (c *Config) applyEnv() {
	setIfEnv(&c.OutputRoot, "LOFIGEN_OUTPUT_ROOT")
	setIfEnv(&c.FFmpegPath, "LOFIGEN_FFMPEG")
	setIfEnv(&c.FFprobePath, "LOFIGEN_FFPROBE")
	setIfEnv(&c.YtdlpPath, "LOFIGEN_YTDLP")
	setIfEnv(&c.ServeAddr, "LOFIGEN_SERVE_ADDR")
}

func setIfEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
