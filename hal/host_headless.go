//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	Surface

	// StatsEvery logs the graphics counters every N ticks (0 = only on exit).
	StatsEvery uint64
}

// RunHeadless drives app without opening a window, drawing to a
// RecordingGraphics. The clock advances by exactly one tick period per
// frame, so runs are repeatable.
func RunHeadless(ctx context.Context, newApp func(HAL) (App, error), cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	s := cfg.Surface.withDefaults()
	g := NewRecordingGraphics(s.Width, s.Height, !s.NoShaders)
	h := newHost(s, g, d)
	app, err := newApp(h)
	if err != nil {
		return err
	}

	var tick uint64
	defer func() {
		h.logger.WriteLineString(fmt.Sprintf("headless: ticks=%d uptime=%s %s", tick, h.t.Now(), g.Stats()))
	}()

	t := time.NewTicker(d)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.step()
			if app != nil {
				if err := app.Update(); err != nil {
					return err
				}
				app.Draw()
			}
			tick++
			if cfg.StatsEvery > 0 && tick%cfg.StatsEvery == 0 {
				h.logger.WriteLineString(fmt.Sprintf("headless: tick=%d %s", tick, g.Stats()))
			}
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
