package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/gifasm/internal/logger"
	"github.com/samcharles93/gifasm/pkg/animate"
	"github.com/samcharles93/gifasm/pkg/gif"
)

var (
	logLevel   string
	logFormat  string
	debug      bool
	configFile string

	// fileConfig is loaded once in setup and read by the commands.
	fileConfig Config
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "config",
		Usage:       "path to config.yaml (default $XDG_CONFIG_HOME/gifasm/config.yaml)",
		Destination: &configFile,
	}
}

// setup loads the config file and installs the logger on the context.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := configFile
	if path == "" {
		path = configPath()
	}
	cfg, err := readConfig(path)
	if err != nil {
		return ctx, err
	}
	fileConfig = cfg
	applyLoggingConfig(cmd, cfg)

	level := logLevel
	if debug {
		level = "debug"
	}
	log, err := logger.Setup(errWriter(cmd), level, logFormat)
	if err != nil {
		return ctx, err
	}
	return logger.WithContext(ctx, log), nil
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// assembleOptions are the flags shared by build and serve.
type assembleOptions struct {
	loops              int
	delay              int
	disposal           int
	workers            int
	transparent        string
	honorTransparent   bool
	exactLocalSizeCode bool
}

func (o *assembleOptions) flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "loops",
			Usage:       "loop count (0 = forever)",
			Destination: &o.loops,
		},
		&cli.IntFlag{
			Name:        "delay",
			Aliases:     []string{"d"},
			Usage:       "default frame delay in hundredths of a second",
			Value:       10,
			Destination: &o.delay,
		},
		&cli.IntFlag{
			Name:        "disposal",
			Usage:       "disposal method for every frame (0-7)",
			Value:       int(animate.DefaultDisposal),
			Destination: &o.disposal,
		},
		&cli.IntFlag{
			Name:        "workers",
			Usage:       "parallel assembly workers (0 = GOMAXPROCS)",
			Destination: &o.workers,
		},
		&cli.StringFlag{
			Name:        "transparent",
			Usage:       "transparent color as #rrggbb or r,g,b (needs --honor-transparent)",
			Destination: &o.transparent,
		},
		&cli.BoolFlag{
			Name:        "honor-transparent",
			Usage:       "use --transparent instead of always keying black",
			Destination: &o.honorTransparent,
		},
		&cli.BoolFlag{
			Name:        "exact-local-size-code",
			Usage:       "label embedded local tables with their own size code",
			Destination: &o.exactLocalSizeCode,
		},
	}
}

func (o *assembleOptions) frameDelay() (uint16, error) {
	if o.delay < 0 || o.delay > 0xFFFF {
		return 0, fmt.Errorf("delay %d out of range 0-65535", o.delay)
	}
	return uint16(o.delay), nil
}

func (o *assembleOptions) config() (animate.Config, error) {
	if o.disposal < 0 || o.disposal > 7 {
		return animate.Config{}, fmt.Errorf("disposal %d out of range 0-7", o.disposal)
	}
	cfg := animate.Config{
		Loops:              o.loops,
		Disposal:           uint8(o.disposal),
		HonorTransparent:   o.honorTransparent,
		ExactLocalSizeCode: o.exactLocalSizeCode,
	}
	if o.transparent != "" {
		rgb, err := parseRGB(o.transparent)
		if err != nil {
			return animate.Config{}, err
		}
		cfg.Transparent = &rgb
	}
	return cfg, nil
}

// parseRGB accepts "#rrggbb", "rrggbb" or "r,g,b".
func parseRGB(s string) (gif.RGB, error) {
	s = strings.TrimSpace(s)
	if parts := strings.Split(s, ","); len(parts) == 3 {
		var c [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return gif.RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
			}
			c[i] = uint8(v)
		}
		return gif.RGB{R: c[0], G: c[1], B: c[2]}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return gif.RGB{}, fmt.Errorf("invalid color %q: want #rrggbb or r,g,b", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return gif.RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return gif.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
