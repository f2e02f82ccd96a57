package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the gifasm configuration file
// (~/.config/gifasm/config.yaml). Pointer fields distinguish "not set" from
// zero values.
type Config struct {
	// Assembly defaults
	Loops              *int  `yaml:"loops"`
	Delay              *int  `yaml:"delay"`
	Disposal           *int  `yaml:"disposal"`
	Workers            *int  `yaml:"workers"`
	HonorTransparent   *bool `yaml:"honor_transparent"`
	ExactLocalSizeCode *bool `yaml:"exact_local_size_code"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress  string `yaml:"server_address"`
	MaxUploadBytes *int64 `yaml:"max_upload_bytes"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gifasm", "config.yaml")
}

// readConfig reads the config file at path. A missing file yields a zero
// Config; a malformed one is an error.
func readConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyAssembleConfig applies config file defaults to the assembly flags
// that were not explicitly set.
func applyAssembleConfig(c *cli.Command, cfg Config, o *assembleOptions) {
	if cfg.Loops != nil && !c.IsSet("loops") {
		o.loops = *cfg.Loops
	}
	if cfg.Delay != nil && !c.IsSet("delay") {
		o.delay = *cfg.Delay
	}
	if cfg.Disposal != nil && !c.IsSet("disposal") {
		o.disposal = *cfg.Disposal
	}
	if cfg.Workers != nil && !c.IsSet("workers") {
		o.workers = *cfg.Workers
	}
	if cfg.HonorTransparent != nil && !c.IsSet("honor-transparent") {
		o.honorTransparent = *cfg.HonorTransparent
	}
	if cfg.ExactLocalSizeCode != nil && !c.IsSet("exact-local-size-code") {
		o.exactLocalSizeCode = *cfg.ExactLocalSizeCode
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string, maxUpload *int64) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.MaxUploadBytes != nil && !c.IsSet("max-upload-bytes") {
		*maxUpload = *cfg.MaxUploadBytes
	}
}
