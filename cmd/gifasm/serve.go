package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/gifasm/internal/api"
	"github.com/samcharles93/gifasm/internal/logger"
)

const defaultMaxUploadBytes = 32 << 20

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		maxUpload   int64
		maxFrames   int
		opts        assembleOptions
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the animation REST API",
		Flags: append(opts.flags(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.Int64Flag{
				Name:        "max-upload-bytes",
				Usage:       "largest accepted request body (0 = unlimited)",
				Value:       defaultMaxUploadBytes,
				Destination: &maxUpload,
			},
			&cli.IntFlag{
				Name:        "max-frames",
				Usage:       "most frames accepted per animation (0 = unlimited)",
				Value:       1000,
				Destination: &maxFrames,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyAssembleConfig(cmd, fileConfig, &opts)
			applyServeConfig(cmd, fileConfig, &addr, &maxUpload)

			cfg, err := opts.config()
			if err != nil {
				return err
			}
			delay, err := opts.frameDelay()
			if err != nil {
				return err
			}

			service := api.NewAssembleService(api.ServiceConfig{
				Animate:   cfg,
				Delay:     delay,
				Workers:   opts.workers,
				MaxFrames: maxFrames,
			})
			server := api.NewServer(api.NewAnimationStore(), service)
			server.SetBodyLimit(maxUpload)

			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			e.Use(api.WithLogger(log))
			server.Register(e)
			log.Info("starting server", "address", addr, "max_upload_bytes", maxUpload)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
