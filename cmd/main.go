package main

import (
	"context"
	"fmt"
	"os"

	"controlling_kettle/internal/config"
	"controlling_kettle/internal/control"
	"controlling_kettle/internal/eventlog"
	"controlling_kettle/internal/kettle"
	"controlling_kettle/internal/logger"
)

func main() {
	// load configs/config.yml (defaults apply when absent)
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)

	// wire dependencies
	k := kettle.New(cfg.Kettle)
	events := eventlog.New()
	loop := &control.Loop{
		Kettle: k,
		Events: events,
		Log:    log,
		In:     os.Stdin,
		Out:    os.Stdout,
	}

	// one interactive heating cycle; SIGINT mid-boil stops the kettle
	if err := loop.Run(context.Background()); err != nil {
		log.Fatalw("control loop failed", "err", err)
	}

	serveWater(k, events, log)
	printCycleRecord(events, log)
}

// serveWater empties the kettle once the cycle ends and records the pour.
func serveWater(k *kettle.Kettle, events *eventlog.Log, log *logger.Logger) {
	volume, err := k.PourOut()
	if err != nil {
		log.Errorw("pour out failed", "err", err)
		return
	}
	if volume == 0 {
		return
	}
	events.Append(eventlog.TypePour, fmt.Sprintf("poured out %.2f l", volume), map[string]any{"volume": volume})
	log.Infow("poured out", "volume", volume)
}

// printCycleRecord logs everything that happened during the session.
func printCycleRecord(events *eventlog.Log, log *logger.Logger) {
	record, err := events.List(eventlog.Filter{})
	if err != nil {
		log.Errorw("listing events failed", "err", err)
		return
	}
	for _, ev := range record {
		log.Infow("cycle event",
			"at", ev.OccurredAt,
			"type", ev.Type,
			"description", ev.Description,
		)
	}
}
