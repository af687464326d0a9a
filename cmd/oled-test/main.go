// Command oled-test draws a test pattern on an SSD1306 display and cycles through
// contrast, inversion and power states.
package main

import (
	"context"
	"errors"
	"flag"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BeatGlow/oled"
	"github.com/BeatGlow/oled/draw"
	"github.com/BeatGlow/oled/internal/board"
	"github.com/BeatGlow/oled/pixel"
)

type config struct {
	image    string
	cycle    bool
	frame    time.Duration
	duration time.Duration
}

func main() {
	var (
		flags board.Flags
		cfg   config
	)
	flag.StringVar(&cfg.image, "image", "", "Image file to show after the pattern")
	flag.BoolVar(&cfg.cycle, "cycle", true, "Cycle contrast, inversion and power")
	flag.DurationVar(&cfg.frame, "frame", 50*time.Millisecond, "Pattern frame interval")
	flag.DurationVar(&cfg.duration, "duration", 5*time.Second, "Pattern duration (0: until interrupted)")
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

// run leaves the display on only when an image was shown successfully.
func run(ctx context.Context, log *slog.Logger, flags *board.Flags, cfg config) (err error) {
	dev, bus, err := flags.Open(log)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, board.Close(dev, bus, err != nil || cfg.image == ""))
	}()

	if cfg.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.duration)
		defer cancel()
	}

	if err = pattern(ctx, dev, cfg.frame); err != nil {
		return err
	}
	if cfg.cycle {
		if err = cycle(dev, log); err != nil {
			return err
		}
	}
	if cfg.image == "" {
		return nil
	}
	img, err := board.LoadPicture(cfg.image, dev.Bounds())
	if err != nil {
		return err
	}
	log.Info("showing image", "path", cfg.image, "size", img.Bounds().Size())
	return dev.Draw(dev.Bounds(), img, img.Bounds().Min)
}

// pattern animates a diagonal stripe pattern inside a border until ctx is done.
func pattern(ctx context.Context, dev *oled.Dev, frame time.Duration) error {
	var (
		offset int
		r      = dev.Bounds()
		ticker = time.NewTicker(frame)
	)
	defer ticker.Stop()

	for {
		dev.Fill(0)
		draw.Rectangle(dev, r, pixel.On)
		for y := 1; y < r.Max.Y-1; y++ {
			for x := 1; x < r.Max.X-1; x++ {
				if (x+y+offset)%4 == 0 {
					dev.SetPixel(x, y, 1)
				}
			}
		}
		box := image.Rect(4, 4, r.Max.X-4, 4+r.Dy()/4)
		draw.Box(dev, box, pixel.Off)
		draw.RoundedRectangle(dev, box, 3, pixel.On)
		if err := dev.Show(); err != nil {
			return err
		}

		offset++
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// cycle steps through contrast levels, inverts the display and power cycles it.
func cycle(dev *oled.Dev, log *slog.Logger) error {
	for _, level := range []uint8{0x00, 0x40, 0x80, 0xc0, 0xff} {
		log.Info("contrast", "level", level)
		if err := dev.Contrast(level); err != nil {
			return err
		}
		time.Sleep(500 * time.Millisecond)
	}
	for _, invert := range []bool{true, false} {
		log.Info("invert", "invert", invert)
		if err := dev.Invert(invert); err != nil {
			return err
		}
		time.Sleep(time.Second)
	}

	log.Info("power off")
	if err := dev.PowerOff(); err != nil {
		return err
	}
	time.Sleep(time.Second)
	log.Info("power on")
	if err := dev.PowerOn(); err != nil {
		return err
	}
	if !dev.Power() {
		return errors.New("display reports power off after power on")
	}
	return nil
}
