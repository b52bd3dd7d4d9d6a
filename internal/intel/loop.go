package intel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/arbitrum1984/Arbitron-Systems/internal/model"
)

// Item is one raw entry pulled from a source before classification.
// Title carries the display text (a headline or a post body), Link is
// the canonical identity used for deduplication.
type Item struct {
	Title   string
	Link    string
	Source  string
	Trusted bool
}

type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Item, error)
}

// Policy decides whether an already-deduplicated item is appended to
// the intelligence timeline.
type Policy func(Item) bool

type Store interface {
	AddMessage(sessionID, role, content string) error
}

// Publisher mirrors accepted items onto a side channel (a Redis list)
// for external consumers. Optional; a nil Publisher disables fan-out.
type Publisher interface {
	Publish(ctx context.Context, msg string) error
}

// Loop polls a fixed set of sources on an interval and appends
// accepted items to the INTEL_STREAM session. Sources are fetched
// concurrently but their results are always processed in configured
// order, then feed order within a source, so replaying the same raw
// inputs yields the same timeline order.
type Loop struct {
	name         string
	sources      []Source
	interval     time.Duration
	fetchTimeout time.Duration
	keep         Policy
	format       func(Item) string
	ledger       *Ledger
	store        Store
	queue        Publisher
}

func NewLoop(name string, sources []Source, interval time.Duration, keep Policy, format func(Item) string, ledger *Ledger, store Store, queue Publisher) *Loop {
	return &Loop{
		name:         name,
		sources:      sources,
		interval:     interval,
		fetchTimeout: 30 * time.Second,
		keep:         keep,
		format:       format,
		ledger:       ledger,
		store:        store,
		queue:        queue,
	}
}

// Run polls until ctx is cancelled. One cycle's failure never
// terminates the loop: errors are logged and the next tick proceeds.
func (l *Loop) Run(ctx context.Context) {
	slog.Info("ingestion loop started", "loop", l.name, "sources", len(l.sources), "interval", l.interval)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		l.cycle(ctx)

		select {
		case <-ctx.Done():
			slog.Info("ingestion loop stopped", "loop", l.name)
			return
		case <-ticker.C:
		}
	}
}

func (l *Loop) cycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("ingestion cycle panicked", "loop", l.name, "panic", r)
		}
	}()

	ingested := l.runCycle(ctx)
	if ingested > 0 {
		slog.Info("intel ingested", "loop", l.name, "count", ingested)
	}
}

func (l *Loop) runCycle(ctx context.Context) int {
	// Fan out to all sources concurrently; a failing source contributes
	// an empty slice for this cycle and never blocks the others.
	results := make([][]Item, len(l.sources))

	var wg sync.WaitGroup
	for i, src := range l.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, l.fetchTimeout)
			defer cancel()

			items, err := src.Fetch(fetchCtx)
			if err != nil {
				slog.Error("source fetch failed", "loop", l.name, "source", src.Name(), "error", err)
				return
			}
			results[i] = items
		}(i, src)
	}
	wg.Wait()

	ingested := 0
	for _, items := range results {
		for _, item := range items {
			fp := Fingerprint(item.Link)
			if l.ledger.Seen(fp) {
				continue
			}
			// Record before classifying: discarded items must not be
			// reconsidered next cycle.
			l.ledger.Record(fp)

			if !l.keep(item) {
				continue
			}

			msg := l.format(item)
			if err := l.store.AddMessage(model.IntelStreamSession, model.RoleSystem, msg); err != nil {
				slog.Error("error appending intel message", "loop", l.name, "source", item.Source, "error", err)
				continue
			}
			ingested++

			if l.queue != nil {
				if err := l.queue.Publish(ctx, msg); err != nil {
					slog.Error("error publishing intel to queue", "loop", l.name, "error", err)
				}
			}
		}
	}
	return ingested
}
