package notify

import (
	"context"

	"court-scheduler/internal/usecase/shared"

	"golang.org/x/sync/errgroup"
)

// Multi fans an event out to every sink concurrently and returns the first failure.
type Multi struct {
	sinks []shared.Notifier
}

func NewMulti(sinks ...shared.Notifier) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) Notify(ctx context.Context, ev shared.ReservationEvent) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, sink := range m.sinks {
		g.Go(func() error {
			return sink.Notify(ctx, ev)
		})
	}
	return g.Wait()
}

// Nop discards events. It stands in when no sink is configured.
type Nop struct{}

func (Nop) Notify(context.Context, shared.ReservationEvent) error { return nil }
