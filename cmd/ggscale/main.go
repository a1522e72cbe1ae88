// Command ggscale renders the ggscale panel through a scripted session
// and writes one PNG per painted frame.
//
// Usage:
//
//	ggscale -config session.yaml -out frames/
//	ggscale -width 320 -height 120 -scale 3 -trace
//	ggscale -surface record -v
//	ggscale -theme theme.yaml -watch      # repaint on theme edits until Ctrl-C
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/gogpu/ggscale"
	"github.com/gogpu/ggscale/host"
	"github.com/gogpu/ggscale/recording"
	"github.com/gogpu/ggscale/surface"
	"github.com/gogpu/ggscale/theme"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "ggscale: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("ggscale", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		config  = fs.String("config", "", "YAML session file")
		out     = fs.String("out", ".", "output directory for frame PNGs")
		trace   = fs.Bool("trace", false, "print the drawing calls of each frame")
		verbose = fs.Bool("v", false, "debug logging")
		width   = fs.Int("width", 200, "surface width")
		height  = fs.Int("height", 100, "surface height")
		scale   = fs.Float64("scale", ggscale.DefaultScaleFactor, "cache scale factor")
		mode    = fs.String("mode", "cached", "cached or direct")
		themeF  = fs.String("theme", "", "theme file (.yaml or .toml)")
		label   = fs.String("label", ggscale.DefaultLabel, "panel label")
		watch   = fs.Bool("watch", false, "keep running and repaint when the theme file changes")
		backend = fs.String("surface", "image", "visible surface backend ("+strings.Join(surface.List(), ", ")+")")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	ggscale.SetLogger(logger)

	sess := defaultSession()
	if *config != "" {
		var err error
		if sess, err = loadSession(*config); err != nil {
			return err
		}
	}
	// Flags given explicitly override the session file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			sess.Width = *width
		case "height":
			sess.Height = *height
		case "scale":
			sess.Scale = *scale
		case "mode":
			sess.Mode = *mode
		case "theme":
			sess.Theme = *themeF
		case "label":
			sess.Label = *label
		case "watch":
			sess.Watch = *watch
		}
	})

	state, err := sess.State()
	if err != nil {
		return err
	}
	events, err := sess.HostEvents()
	if err != nil {
		return err
	}

	th := theme.New()
	if sess.Theme != "" {
		if th, err = theme.Load(sess.Theme); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	alloc, err := surface.AllocatorByName(*backend)
	if err != nil {
		return err
	}
	var visible *recording.Recorder
	if *trace {
		alloc = recording.Allocator(alloc, func(r *recording.Recorder) { visible = r })
	}

	frame := 0
	var frameErr error
	onFrame := func(img *surface.RasterImage) {
		if visible != nil {
			fmt.Fprintf(stdout, "frame %03d\n", frame)
			_, _ = visible.Finish().WriteTo(stdout)
			visible.Reset()
		}
		path := filepath.Join(*out, fmt.Sprintf("frame-%03d.png", frame))
		frame++
		if err := writePNG(path, img); err != nil {
			frameErr = errors.Join(frameErr, err)
			return
		}
		logger.Info("frame written", slog.String("path", path), slog.String("size", img.Size().String()))
	}

	loop, err := host.New(sess.Width, sess.Height, th,
		host.WithState(state),
		host.WithAllocator(alloc),
		host.WithLogger(logger),
		host.WithOnFrame(onFrame),
		host.WithRendererOptions(ggscale.WithLabel(sess.Label)),
	)
	if err != nil {
		return err
	}
	defer func() { _ = loop.Close() }()

	if err := loop.Repaint(); err != nil {
		return err
	}
	for _, ev := range events {
		if err := loop.Step(ev); err != nil {
			logger.Warn("paint skipped", slog.Any("event", ev), slog.String("err", err.Error()))
		}
	}

	if sess.Watch && sess.Theme != "" {
		w, err := theme.Watch(th, sess.Theme, func() { loop.Post(host.RefreshEvent{}) },
			theme.WithLogger(logger))
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()

		logger.Info("watching theme", slog.String("path", sess.Theme))
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}

	st := loop.Stats()
	fmt.Fprintf(stdout, "%d frames, %d draws, %d events, %d errors (cache: %d builds, %d hits)\n",
		st.Paints, st.Draws, st.Events, st.Errors,
		loop.Renderer().Cache().Stats().Builds, loop.Renderer().Cache().Stats().Hits)
	return frameErr
}

func writePNG(path string, img *surface.RasterImage) error {
	f, err := os.Create(path) // #nosec G304 -- output path is built from the -out flag
	if err != nil {
		return err
	}
	if err := img.EncodePNG(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
