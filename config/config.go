package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/psanchez-dev/document-intelligence/extract"
)

type Config struct {
	ServerPort     string                `yaml:"server_port"`
	MaxFileSize    int64                 `yaml:"max_file_size"`
	MaxBatchSize   int                   `yaml:"max_batch_size"`
	TessdataPrefix string                `yaml:"tessdata_prefix"`
	Scoring        extract.ScoringConfig `yaml:"scoring"`
}

func Default() *Config {
	return &Config{
		ServerPort:     "8080",
		MaxFileSize:    10 * 1024 * 1024, // 10 MB
		MaxBatchSize:   10,
		TessdataPrefix: "/usr/share/tesseract-ocr/5/tessdata/",
		Scoring:        extract.DefaultScoring(),
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment overrides, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.ServerPort = port
	}
	if prefix := os.Getenv("TESSDATA_PREFIX"); prefix != "" {
		cfg.TessdataPrefix = prefix
	}

	return cfg, nil
}
