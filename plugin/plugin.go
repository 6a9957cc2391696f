// Package plugin implements the SavePlayers plugin: a command that saves the position and the items of every
// online player to a JSON file per player, with all items converted to the Java Edition format.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"time"

	"git.patyhank.net/falloutBot/saveplayers/config"
	"git.patyhank.net/falloutBot/saveplayers/conv"
	"git.patyhank.net/falloutBot/saveplayers/snapshot"
	"github.com/df-mc/atomic"
	"github.com/goxiaoy/go-eventbus"
	"github.com/sandertv/gophertunnel/minecraft/text"
	log "github.com/sirupsen/logrus"
)

// Name is the name the plugin reports itself with.
const Name = "SavePlayers"

var (
	// ErrSaveInProgress is returned by SaveAll if another save of all players has not finished yet.
	ErrSaveInProgress = errors.New("a save is already in progress")
	// ErrPanic is returned for a player whose save panicked.
	ErrPanic = errors.New("save panicked")
)

// Sink stores the document collected for a player.
type Sink interface {
	Save(name string, doc any) error
}

// Target is a player that is saved by SaveAll and told when its save succeeded.
type Target interface {
	snapshot.Source
	Message(a ...any)
}

// Feedback receives the messages meant for whoever started a save.
type Feedback interface {
	Info(msg string)
	Error(msg string)
}

// Result lists the names of the players saved by SaveAll.
type Result struct {
	Saved  []string
	Failed []string
}

// Plugin saves players to a Sink.
type Plugin struct {
	conf   config.Config
	sink   Sink
	log    *log.Logger
	bus    *eventbus.EventBus
	saving atomic.Bool

	disposers []func()
}

// New creates the plugin. If logger is nil, a logger is created using the level in conf. The rename rules
// in conf.RenamesFile, if set, replace the default rules.
func New(conf config.Config, sink Sink, logger *log.Logger) (*Plugin, error) {
	if logger == nil {
		logger = NewLogger(conf.Level())
	}
	if conf.RenamesFile != "" {
		b, err := os.ReadFile(conf.RenamesFile)
		if err != nil {
			return nil, fmt.Errorf("read rename rules: %w", err)
		}
		if err := conv.LoadRenames(b); err != nil {
			return nil, err
		}
		logger.WithField("file", conf.RenamesFile).Info("Loaded item rename rules")
	}
	p := &Plugin{
		conf: conf,
		sink: sink,
		log:  logger,
		bus:  eventbus.New(),
	}
	if err := p.attachLogListeners(); err != nil {
		return nil, err
	}
	return p, nil
}

// Config returns the configuration of the plugin.
func (p *Plugin) Config() config.Config {
	return p.conf
}

// Logger returns the logger of the plugin.
func (p *Plugin) Logger() *log.Logger {
	return p.log
}

// EventBus returns the bus SavedEvent and SaveFailedEvent are published on.
func (p *Plugin) EventBus() *eventbus.EventBus {
	return p.bus
}

// Close detaches the listeners the plugin attached to its event bus.
func (p *Plugin) Close() {
	for _, dispose := range p.disposers {
		dispose()
	}
	p.disposers = nil
}

// SavePlayer collects the position and items of src and stores them in the sink.
func (p *Plugin) SavePlayer(src snapshot.Source) error {
	doc, err := snapshot.Collect(src)
	if err != nil {
		return err
	}
	if err := p.sink.Save(src.Name(), doc); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

// SaveAll saves every target. A failed save of one target does not stop the others from being saved. The
// origin is told about the outcome for every target, and targets are told when their save succeeded.
// ErrSaveInProgress is returned if SaveAll is already running.
func (p *Plugin) SaveAll(ctx context.Context, targets iter.Seq[Target], origin Feedback) (Result, error) {
	if !p.saving.CAS(false, true) {
		return Result{}, ErrSaveInProgress
	}
	defer p.saving.Store(false)

	var res Result
	p.log.Info("Saving player inventories")

	for t := range targets {
		name, start := t.Name(), time.Now()
		if err := p.save(t); err != nil {
			res.Failed = append(res.Failed, name)
			origin.Error(text.Colourf("<red>Failed to save the inventory of %v: %v</red>", name, err))
			p.publish(ctx, &SaveFailedEvent{Name: name, UUID: t.UUID(), Err: err})
			continue
		}
		res.Saved = append(res.Saved, name)
		msg := text.Colourf("<green>@%v, your inventory has been saved.</green>", name)
		origin.Info(msg)
		t.Message(msg)
		p.publish(ctx, &SavedEvent{Name: name, UUID: t.UUID(), Duration: time.Since(start)})
	}
	return res, nil
}

// save runs SavePlayer, turning a panic into an error so that other players are still saved.
func (p *Plugin) save(src snapshot.Source) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return p.SavePlayer(src)
}
