package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/gifasm/internal/framestore"
	"github.com/samcharles93/gifasm/pkg/gif"
)

// inspectReport is the --json shape of one inspected file.
type inspectReport struct {
	Path   string      `json:"path"`
	Bytes  int         `json:"bytes"`
	Frames int         `json:"frames"`
	Loops  *int        `json:"loops,omitempty"`
	Frame  string      `json:"frame_check"`
	Layout *gif.Layout `json:"layout"`
}

func inspectCmd() *cli.Command {
	var (
		asJSON bool
		blocks bool
	)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Describe the block structure of GIF files",
		ArgsUsage: "file.gif [file.gif ...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print reports as JSON", Destination: &asJSON},
			&cli.BoolFlag{Name: "blocks", Usage: "list every top-level block", Value: true, Destination: &blocks},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return errors.New("inspect: at least one file is required")
			}
			reports := make([]inspectReport, 0, len(paths))
			for _, p := range paths {
				r, err := inspectFile(p)
				if err != nil {
					return err
				}
				reports = append(reports, r)
			}

			w := outWriter(cmd)
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(reports)
			}
			for _, r := range reports {
				printReport(w, r, blocks)
			}
			return nil
		},
	}
}

func inspectFile(path string) (inspectReport, error) {
	src, err := framestore.Open(path)
	if err != nil {
		return inspectReport{}, err
	}
	defer func() {
		_ = src.Close()
	}()

	layout, err := gif.Walk(src.Data)
	if err != nil {
		return inspectReport{}, fmt.Errorf("%s: %w", path, err)
	}
	r := inspectReport{
		Path:   path,
		Bytes:  len(src.Data),
		Frames: layout.Images(),
		Frame:  "ok",
		Layout: layout,
	}
	if n, ok := layout.LoopCount(); ok {
		r.Loops = &n
	}
	if err := gif.Validate(gif.NewFrame(0, src.Data)); err != nil {
		var fe *gif.FrameError
		if errors.As(err, &fe) {
			err = fe.Err
		}
		r.Frame = err.Error()
	}
	return r, nil
}

func printReport(w io.Writer, r inspectReport, blocks bool) {
	l := r.Layout
	_, _ = fmt.Fprintf(w, "%s\n", r.Path)
	_, _ = fmt.Fprintf(w, "  version:      %s\n", l.Version)
	_, _ = fmt.Fprintf(w, "  screen:       %dx%d\n", l.Width, l.Height)
	_, _ = fmt.Fprintf(w, "  bytes:        %d\n", r.Bytes)
	if l.ScreenFlags.HasGlobalTable() {
		_, _ = fmt.Fprintf(w, "  global table: %d entries\n", l.ScreenFlags.TableLen())
	} else {
		_, _ = fmt.Fprintf(w, "  global table: none\n")
	}
	_, _ = fmt.Fprintf(w, "  frames:       %d\n", r.Frames)
	if r.Loops != nil {
		_, _ = fmt.Fprintf(w, "  loops:        %d\n", *r.Loops)
	}
	_, _ = fmt.Fprintf(w, "  frame check:  %s\n", r.Frame)
	if !blocks {
		return
	}
	_, _ = fmt.Fprintf(w, "  blocks:\n")
	for _, b := range l.Blocks {
		_, _ = fmt.Fprintf(w, "    %8d %-18s %6d  %s\n", b.Offset, b.Kind, b.Size, describeBlock(b))
	}
}

func describeBlock(b gif.Block) string {
	switch b.Kind {
	case gif.BlockExtension:
		switch {
		case b.Label == gif.LabelGraphicControl:
			s := fmt.Sprintf("graphic control delay=%d disposal=%d", b.Delay, b.Disposal)
			if b.Transparent {
				s += fmt.Sprintf(" transparent=%d", b.TransparentIndex)
			}
			return s
		case b.Application == gif.NetscapeApplication:
			return fmt.Sprintf("application %s loops=%d", b.Application, b.LoopCount)
		case b.Application != "":
			return "application " + b.Application
		default:
			return fmt.Sprintf("label=0x%02X", b.Label)
		}
	case gif.BlockImage:
		s := fmt.Sprintf("%dx%d at %d,%d", b.Width, b.Height, b.Left, b.Top)
		if b.LocalTableLen > 0 {
			s += fmt.Sprintf(" local table=%d", b.LocalTableLen)
		}
		if b.Flags.Interlaced() {
			s += " interlaced"
		}
		return s
	}
	return ""
}
