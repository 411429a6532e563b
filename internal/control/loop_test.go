package control

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"controlling_kettle"
	"controlling_kettle/internal/eventlog"
	"controlling_kettle/internal/kettle"
	"controlling_kettle/internal/logger"
)

func testLoop(in string, boiling time.Duration) (*Loop, *bytes.Buffer) {
	k := kettle.New(kettle.Config{
		MinVolume:        0.2,
		MaxVolume:        1.0,
		StartTemperature: 20,
		MaxTemperature:   100,
		BoilingTime:      boiling,
	})
	out := &bytes.Buffer{}
	return &Loop{
		Kettle:   k,
		Events:   eventlog.New(),
		Log:      logger.Get(logger.ErrorLevel),
		In:       strings.NewReader(in),
		Out:      out,
		Interval: 5 * time.Millisecond,
	}, out
}

func eventTypes(t *testing.T, events *eventlog.Log) []string {
	t.Helper()
	all, err := events.List(eventlog.Filter{})
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	types := make([]string, 0, len(all))
	for _, ev := range all {
		types = append(types, ev.Type)
	}
	return types
}

func hasType(types []string, want string) bool {
	for _, typ := range types {
		if typ == want {
			return true
		}
	}
	return false
}

func TestRun_RetriesUntilValidFillThenBoils(t *testing.T) {
	l, out := testLoop("abc\n-1\n5\n0.5\n", 30*time.Millisecond)

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := l.Kettle.CheckCondition(); got.Status != controlling_kettle.StatusReady {
		t.Fatalf("status = %s after run, want ready", got.Status)
	}
	text := out.String()
	if !strings.Contains(text, "is not a number") {
		t.Fatalf("expected parse complaint in output:\n%s", text)
	}
	if !strings.Contains(text, "Status changed: ready") {
		t.Fatalf("expected ready announcement in output:\n%s", text)
	}

	types := eventTypes(t, l.Events)
	for _, want := range []string{eventlog.TypeError, eventlog.TypeFill, eventlog.TypeStart, eventlog.TypeReady} {
		if !hasType(types, want) {
			t.Fatalf("missing %s event, got %v", want, types)
		}
	}
}

func TestRun_TooLittleWaterIsRetried(t *testing.T) {
	l, out := testLoop("0.1\n0.4\n", 20*time.Millisecond)

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "water level too low") {
		t.Fatalf("expected switch complaint in output:\n%s", out.String())
	}
	if got := l.Kettle.CheckCondition(); got.Status != controlling_kettle.StatusReady {
		t.Fatalf("status = %s after run, want ready", got.Status)
	}
}

func TestRun_InputClosedBeforeStart(t *testing.T) {
	l, _ := testLoop("", time.Second)
	if err := l.Run(context.Background()); err == nil {
		t.Fatalf("expected error when input closes before start")
	}
}

// cancelOnOutput cancels the context once the watch phase prints its first
// temperature line, simulating an operator interrupt mid-boil.
type cancelOnOutput struct {
	buf    bytes.Buffer
	cancel context.CancelFunc
}

func (w *cancelOnOutput) Write(p []byte) (int, error) {
	n, err := w.buf.Write(p)
	if strings.Contains(w.buf.String(), "Current temperature") {
		w.cancel()
	}
	return n, err
}

func TestRun_CancelStopsHeating(t *testing.T) {
	l, _ := testLoop("0.5\n", 10*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l.Out = &cancelOnOutput{cancel: cancel}

	if err := l.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.Kettle.CheckCondition(); got.Status != controlling_kettle.StatusStopped {
		t.Fatalf("status = %s after cancel, want stopped", got.Status)
	}
	if !hasType(eventTypes(t, l.Events), eventlog.TypeStop) {
		t.Fatalf("expected STOP event, got %v", eventTypes(t, l.Events))
	}
}
