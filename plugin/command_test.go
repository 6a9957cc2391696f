package plugin

import (
	"iter"
	"testing"
	"time"

	"git.patyhank.net/falloutBot/saveplayers/config"
	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// consoleSource is a command source that is not a player.
type consoleSource struct {
	outputs []*cmd.Output
}

func (*consoleSource) Position() mgl64.Vec3                { return mgl64.Vec3{} }
func (c *consoleSource) SendCommandOutput(o *cmd.Output) { c.outputs = append(c.outputs, o) }

// emptyRoster is a server without players online.
type emptyRoster struct {
	calls chan *world.Tx
}

func (r emptyRoster) Players(tx *world.Tx) iter.Seq[*player.Player] {
	if r.calls != nil {
		r.calls <- tx
	}
	return func(yield func(*player.Player) bool) {}
}

func TestCommand(t *testing.T) {
	conf := config.Default()
	conf.Command = "backupinv"
	p, err := New(conf, &fakeSink{}, NewLogger(log.PanicLevel))
	require.NoError(t, err)
	defer p.Close()

	c := p.Command(emptyRoster{})
	assert.Equal(t, "backupinv", c.Name())
	assert.Equal(t, "Save players pos and inventory", c.Description())
	// The console is always allowed to run the command.
	assert.Len(t, c.Runnables(&consoleSource{}), 1)
}

func TestSaveInvAllowConsole(t *testing.T) {
	p, _ := newTestPlugin(t, &fakeSink{})
	assert.True(t, SaveInv{p: p}.Allow(&consoleSource{}))
}

func TestSaveInvRun(t *testing.T) {
	logger, hook := test.NewNullLogger()
	p, err := New(config.Default(), &fakeSink{}, logger)
	require.NoError(t, err)
	defer p.Close()

	roster := emptyRoster{calls: make(chan *world.Tx, 1)}
	src := &consoleSource{}
	p.Command(roster).Execute("", src, nil)

	require.Len(t, src.outputs, 1)
	o := src.outputs[0]
	assert.Zero(t, o.ErrorCount())
	require.Equal(t, 1, o.MessageCount())
	assert.Contains(t, o.Messages()[0].String(), "Saving player inventories...")

	select {
	case tx := <-roster.calls:
		// Players of every world are listed, not only those of the transaction the command ran in.
		assert.Nil(t, tx)
	case <-time.After(time.Second):
		t.Fatal("players were never listed")
	}
	assert.Eventually(t, func() bool {
		for _, e := range hook.AllEntries() {
			if e.Message == "Saved 0 players." {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}
