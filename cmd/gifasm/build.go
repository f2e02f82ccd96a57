package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/gifasm/internal/framestore"
	"github.com/samcharles93/gifasm/internal/logger"
	"github.com/samcharles93/gifasm/pkg/animate"
)

func buildCmd() *cli.Command {
	var (
		output   string
		dir      string
		manifest string
		parallel bool
		opts     assembleOptions
	)

	return &cli.Command{
		Name:      "build",
		Usage:     "Assemble single-image GIFs into one animated GIF",
		ArgsUsage: "[frame.gif ...]",
		Flags: append(opts.flags(),
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output path (\"-\" or empty writes to stdout)",
				Destination: &output,
			},
			&cli.StringFlag{
				Name:        "dir",
				Usage:       "read every *.gif in this directory, sorted by name",
				Destination: &dir,
			},
			&cli.StringFlag{
				Name:        "manifest",
				Usage:       "YAML manifest listing frames, delays and loops",
				Destination: &manifest,
			},
			&cli.BoolFlag{
				Name:        "parallel",
				Usage:       "assemble frames concurrently",
				Destination: &parallel,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyAssembleConfig(cmd, fileConfig, &opts)

			cfg, err := opts.config()
			if err != nil {
				return err
			}
			delay, err := opts.frameDelay()
			if err != nil {
				return err
			}

			set, err := loadFrames(ctx, cmd.Args().Slice(), dir, manifest, delay)
			if err != nil {
				return err
			}
			defer func() {
				_ = set.Close()
			}()
			if set.Loops != nil && !cmd.IsSet("loops") {
				cfg.Loops = *set.Loops
			}

			start := time.Now()
			var out []byte
			if parallel {
				out, err = animate.AssembleParallel(ctx, set.Buffers(), set.Delays, cfg, opts.workers)
			} else {
				out, err = animate.Assemble(set.Buffers(), set.Delays, cfg)
			}
			if err != nil {
				return err
			}

			if err := writeOutput(cmd, output, out); err != nil {
				return err
			}
			log.Info("assembled animation",
				"frames", len(set.Sources),
				"bytes", len(out),
				"loops", cfg.LoopCount(),
				"output", displayOutput(output),
				"elapsed", time.Since(start),
			)
			return nil
		},
	}
}

// loadFrames picks exactly one frame source: positional paths, a directory or
// a manifest.
func loadFrames(ctx context.Context, paths []string, dir, manifest string, delay uint16) (*framestore.Set, error) {
	sources := 0
	for _, set := range []bool{len(paths) > 0, dir != "", manifest != ""} {
		if set {
			sources++
		}
	}
	switch {
	case sources == 0:
		return nil, errors.New("no frames given: pass frame paths, --dir or --manifest")
	case sources > 1:
		return nil, errors.New("frame paths, --dir and --manifest are mutually exclusive")
	case dir != "":
		return framestore.LoadDir(ctx, dir, delay)
	case manifest != "":
		return framestore.LoadManifest(ctx, manifest, delay)
	default:
		return framestore.LoadPaths(ctx, paths, delay)
	}
}

func writeOutput(cmd *cli.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := outWriter(cmd).Write(data)
		return err
	}
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func displayOutput(path string) string {
	if path == "" || path == "-" {
		return "stdout"
	}
	return path
}
