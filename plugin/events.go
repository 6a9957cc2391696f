package plugin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/goxiaoy/go-eventbus"
	log "github.com/sirupsen/logrus"
)

// SavedEvent is published after a player was saved.
type SavedEvent struct {
	Name     string
	UUID     uuid.UUID
	Duration time.Duration
}

// SaveFailedEvent is published after saving a player failed.
type SaveFailedEvent struct {
	Name string
	UUID uuid.UUID
	Err  error
}

func (p *Plugin) publish(ctx context.Context, ev any) {
	var err error
	switch ev := ev.(type) {
	case *SavedEvent:
		err = eventbus.Publish[*SavedEvent](p.bus)(ctx, ev)
	case *SaveFailedEvent:
		err = eventbus.Publish[*SaveFailedEvent](p.bus)(ctx, ev)
	}
	if err != nil {
		p.log.WithError(err).Warn("Event listener failed")
	}
}

// attachLogListeners logs every save outcome.
func (p *Plugin) attachLogListeners() error {
	saved, err := eventbus.Subscribe[*SavedEvent](p.bus)(func(ctx context.Context, ev *SavedEvent) error {
		p.log.WithFields(log.Fields{"player": ev.Name, "uuid": ev.UUID, "took": ev.Duration}).
			Infof("Saved the inventory of %v", ev.Name)
		return nil
	})
	if err != nil {
		return err
	}
	failed, err := eventbus.Subscribe[*SaveFailedEvent](p.bus)(func(ctx context.Context, ev *SaveFailedEvent) error {
		p.log.WithFields(log.Fields{"player": ev.Name, "uuid": ev.UUID}).WithError(ev.Err).
			Errorf("Failed to save the inventory of %v", ev.Name)
		return nil
	})
	if err != nil {
		saved.Dispose()
		return err
	}
	p.disposers = append(p.disposers, func() { saved.Dispose() }, func() { failed.Dispose() })
	return nil
}
