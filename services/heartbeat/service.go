// Package heartbeat prints a periodic liveness line carrying the frozen
// clock tree, so a serial console shows both that the firmware runs and how
// fast.
package heartbeat

import (
	"context"
	"time"

	"ht32-hal-go/drivers/ckcu"
)

const defaultInterval = time.Second

type Service struct {
	Clocks   ckcu.Clocks
	Interval time.Duration
}

// Line is the text printed for a beat at t.
func (s *Service) Line(t time.Time) string {
	line := t.Format("15:04:05") + " heartbeat sys=" + s.Clocks.Sys().String() +
		" hclk=" + s.Clocks.Hclk().String()
	if usb := s.Clocks.USB(); usb != 0 {
		line += " usb=" + usb.String()
	}
	return line
}

func (s *Service) interval() time.Duration {
	if s.Interval <= 0 {
		return defaultInterval
	}
	return s.Interval
}

func (s *Service) serviceLoop(ctx context.Context) {
	tick := time.NewTicker(s.interval())
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			println("Info: heartbeat service stopping")
			return
		case t := <-tick.C:
			println("Info:", s.Line(t))
		}
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context) error {
	go s.serviceLoop(ctx)
	return nil
}
