package plugin

import (
	"context"
	"iter"

	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/sandertv/gophertunnel/minecraft/text"
	log "github.com/sirupsen/logrus"
)

// Roster lists the players online on the server. *server.Server implements it.
type Roster interface {
	Players(tx *world.Tx) iter.Seq[*player.Player]
}

// Command returns the command saving every online player of srv, named after the Command field of the
// configuration.
func (p *Plugin) Command(srv Roster) cmd.Command {
	return cmd.New(p.conf.Command, "Save players pos and inventory", nil, SaveInv{p: p, srv: srv})
}

// Allowed checks if a player with the name passed may run the save command.
func (p *Plugin) Allowed(name string) bool {
	return p.conf.Operator(name)
}

// SaveInv saves the position and items of every online player.
type SaveInv struct {
	p   *Plugin
	srv Roster
}

// Allow ...
func (c SaveInv) Allow(src cmd.Source) bool {
	if pl, ok := src.(*player.Player); ok {
		return c.p.Allowed(pl.Name())
	}
	return true
}

// Run ...
func (c SaveInv) Run(src cmd.Source, o *cmd.Output, _ *world.Tx) {
	o.Print(text.Colourf("<yellow>Saving player inventories...</yellow>"))

	var fb flushFeedback = logFeedback{log: c.p.log}
	if pl, ok := src.(*player.Player); ok {
		fb = &playerFeedback{h: pl.H()}
	}
	// Players in every world are visited in their own transaction, which cannot be opened while the
	// transaction of this command is still running.
	go func() {
		c.p.SaveAllAndReport(context.Background(), Targets(c.srv.Players(nil)), fb)
		fb.Flush()
	}()
}

// SaveAllAndReport runs SaveAll and tells the origin how many players were saved.
func (p *Plugin) SaveAllAndReport(ctx context.Context, targets iter.Seq[Target], origin Feedback) Result {
	res, err := p.SaveAll(ctx, targets, origin)
	switch {
	case err != nil:
		origin.Error(text.Colourf("<red>%v, try again once it has finished.</red>", err))
	case len(res.Failed) > 0:
		origin.Error(text.Colourf("<red>Saved %v players, %v failed.</red>", len(res.Saved), len(res.Failed)))
	default:
		origin.Info(text.Colourf("<green>Saved %v players.</green>", len(res.Saved)))
	}
	return res
}

// Targets adapts an iterator over players to one over save targets.
func Targets(players iter.Seq[*player.Player]) iter.Seq[Target] {
	return func(yield func(Target) bool) {
		for pl := range players {
			if !yield(pl) {
				return
			}
		}
	}
}

type flushFeedback interface {
	Feedback
	Flush()
}

// playerFeedback collects the messages for the player that ran the command and sends them once the save
// is done, as the player may be in a world whose transaction is open while the messages are produced.
type playerFeedback struct {
	h    *world.EntityHandle
	msgs []string
}

func (f *playerFeedback) Info(msg string)  { f.msgs = append(f.msgs, msg) }
func (f *playerFeedback) Error(msg string) { f.msgs = append(f.msgs, msg) }

// Flush ...
func (f *playerFeedback) Flush() {
	msgs := f.msgs
	f.msgs = nil
	if len(msgs) == 0 {
		return
	}
	f.h.ExecWorld(func(tx *world.Tx, e world.Entity) {
		if pl, ok := e.(*player.Player); ok {
			for _, msg := range msgs {
				pl.Message(msg)
			}
		}
	})
}

// logFeedback writes feedback for sources that are not players to the log.
type logFeedback struct {
	log *log.Logger
}

func (f logFeedback) Info(msg string)  { f.log.Info(text.Clean(msg)) }
func (f logFeedback) Error(msg string) { f.log.Error(text.Clean(msg)) }
func (f logFeedback) Flush()           {}
