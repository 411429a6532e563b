// Package control drives the kettle from an interactive console: prompt
// for a fill volume, switch on, then poll the condition until the water
// boils or the operator stops it.
package control

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"controlling_kettle"
	"controlling_kettle/internal/eventlog"
	"controlling_kettle/internal/kettle"
	"controlling_kettle/internal/logger"
)

const defaultPollInterval = 1 * time.Second

var (
	promptf = color.New(color.FgCyan).FprintfFunc()
	alertf  = color.New(color.FgRed).FprintfFunc()
	tempf   = color.New(color.FgYellow).FprintfFunc()
	statusf = color.New(color.FgGreen).FprintfFunc()
)

// Loop owns one interaction cycle with the kettle. Interval controls how
// often the condition is polled while heating and defaults to one second;
// the temperature the operator sees is only as fresh as that poll.
type Loop struct {
	Kettle   *kettle.Kettle
	Events   *eventlog.Log
	Log      *logger.Logger
	In       io.Reader
	Out      io.Writer
	Interval time.Duration
}

// Run prompts until the kettle is filled and switched on, then watches the
// heating cycle until the status leaves "on". An interrupt signal or a
// canceled context during the watch performs a manual stop.
func (l *Loop) Run(ctx context.Context) error {
	interval := l.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if err := l.fillAndStart(ctx); err != nil {
		return err
	}
	l.watchBoiling(ctx, interval)
	return nil
}

// fillAndStart re-prompts on every rejected volume or switch until the
// kettle is heating. Rejections are recorded as ERROR events.
func (l *Loop) fillAndStart(ctx context.Context) error {
	scanner := bufio.NewScanner(l.In)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		promptf(l.Out, "How much water to fill (from 0 to %g): ", l.Kettle.MaxVolume())
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return errors.New("input closed before the kettle was started")
		}
		raw := strings.TrimSpace(scanner.Text())
		volume, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			alertf(l.Out, "%q is not a number\n", raw)
			continue
		}
		if err := l.Kettle.Fill(volume); err != nil {
			l.Events.Append(eventlog.TypeError, err.Error(), map[string]any{"volume": volume})
			alertf(l.Out, "%v\n", err)
			continue
		}
		l.Events.Append(eventlog.TypeFill, fmt.Sprintf("filled %.2f l", volume), map[string]any{"volume": volume})
		if err := l.Kettle.TogglePower(); err != nil {
			l.Events.Append(eventlog.TypeError, err.Error(), nil)
			alertf(l.Out, "%v\n", err)
			continue
		}
		l.Events.Append(eventlog.TypeStart, "heating started", map[string]any{"volume": volume})
		l.Log.Infow("kettle switched on", "volume", volume)
		return nil
	}
}

// watchBoiling polls the condition every interval, printing the
// temperature and announcing status changes, until the kettle is no
// longer heating.
func (l *Loop) watchBoiling(ctx context.Context, interval time.Duration) {
	cond := l.Kettle.CheckCondition()
	current := cond.Status
	if current != controlling_kettle.StatusOn {
		return
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for current == controlling_kettle.StatusOn {
		tempf(l.Out, "Current temperature: %.1f\n", cond.Temperature)
		select {
		case <-ctx.Done():
			l.manualStop()
		case <-sig:
			l.manualStop()
		case <-ticker.C:
		}
		cond = l.Kettle.CheckCondition()
		if cond.Status != current {
			statusf(l.Out, "Status changed: %s\n", cond.Status)
			switch cond.Status {
			case controlling_kettle.StatusReady:
				l.Events.Append(eventlog.TypeReady, "water boiled", map[string]any{"temperature": cond.Temperature})
			case controlling_kettle.StatusStopped:
				l.Events.Append(eventlog.TypeStop, "heating stopped", map[string]any{"temperature": cond.Temperature})
			}
			current = cond.Status
		}
	}
}

// manualStop toggles the kettle off on behalf of the operator. A rejected
// toggle here means the heating cycle already ended on its own.
func (l *Loop) manualStop() {
	if err := l.Kettle.TogglePower(); err != nil {
		l.Log.Debugw("manual stop ignored", "err", err)
	}
}
