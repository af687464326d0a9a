// Command oled-stats shows host status (time, CPU, memory, disk, temperature and
// address) on an SSD1306 display.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BeatGlow/oled/internal/board"
	"github.com/BeatGlow/oled/internal/stats"
)

type config struct {
	title        string
	interval     time.Duration
	slowInterval time.Duration
	font         string
	fontSize     float64
	lineHeight   int
	contrast     int
}

func main() {
	var (
		flags board.Flags
		cfg   config
	)
	flag.StringVar(&cfg.title, "title", "ROCK 5B STATE", "Title line")
	flag.DurationVar(&cfg.interval, "interval", 500*time.Millisecond, "Refresh interval")
	flag.DurationVar(&cfg.slowInterval, "slow-interval", stats.DefaultSlowInterval, "Address and disk refresh interval")
	flag.StringVar(&cfg.font, "font", "", `TrueType font file, "basic" for the built-in bitmap font (default: Go Mono)`)
	flag.Float64Var(&cfg.fontSize, "font-size", stats.DefaultFontSize, "Font size in points")
	flag.IntVar(&cfg.lineHeight, "line-height", 8, "Line height in pixels (0: font height)")
	flag.IntVar(&cfg.contrast, "contrast", -1, "Display contrast 0-255 (default: keep)")
	flags.Register(flag.CommandLine)
	flag.Parse()

	log := flags.Logger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, log, &flags, cfg)
	stop()
	if err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, flags *board.Flags, cfg config) (err error) {
	face, err := stats.LoadFace(cfg.font, cfg.fontSize)
	if err != nil {
		return err
	}
	if cfg.contrast > 0xff {
		return fmt.Errorf("contrast %d out of range", cfg.contrast)
	}

	dev, bus, err := flags.Open(log)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, board.Close(dev, bus, true))
	}()

	if cfg.contrast >= 0 {
		if err = dev.Contrast(uint8(cfg.contrast)); err != nil {
			return err
		}
	}

	var (
		collector = stats.NewCollector(&stats.Opts{
			SlowInterval: cfg.slowInterval,
			Logger:       log,
		})
		screen = &stats.Screen{
			Title:      cfg.title,
			Face:       face,
			LineHeight: cfg.lineHeight,
		}
		ticker = time.NewTicker(cfg.interval)
	)
	defer ticker.Stop()

	log.Info("hit control-c to stop...")
	for {
		if err := screen.Render(dev, collector.Collect(ctx)); err != nil {
			log.Error("refresh failed", "error", err)
		}
		select {
		case <-ctx.Done():
			log.Info("stopping", "reason", context.Cause(ctx))
			return nil
		case <-ticker.C:
		}
	}
}
