package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.patyhank.net/falloutBot/saveplayers/config"
	_ "git.patyhank.net/falloutBot/saveplayers/extra" // registers shulker box items
	"git.patyhank.net/falloutBot/saveplayers/plugin"
	"git.patyhank.net/falloutBot/saveplayers/store"
	"github.com/df-mc/dragonfly/server"
	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dragonfly/server/player/chat"
	"github.com/pelletier/go-toml"
	log "github.com/sirupsen/logrus"
)

func main() {
	chat.Global.Subscribe(chat.StdoutSubscriber{})

	conf, err := config.Load(filepath.Join(config.Default().Directory, "config.toml"))
	if err != nil {
		log.Fatalln(err)
	}
	logger := plugin.NewLogger(conf.Level())

	srvConf, err := readConfig(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	if err != nil {
		logger.Fatalln(err)
	}
	srv := srvConf.New()

	p, err := plugin.New(conf, store.Files{Dir: conf.Directory, Pattern: conf.FilePattern}, logger)
	if err != nil {
		logger.Fatalln(err)
	}
	defer p.Close()
	cmd.Register(p.Command(srv))
	logger.WithField("command", conf.Command).Infof("%v enabled", plugin.Name)

	srv.CloseOnProgramEnd()
	srv.Listen()
	for range srv.Accept() {
	}
}

// readConfig reads the server configuration from config.toml, writing the default configuration first if
// the file does not exist yet.
func readConfig(l *slog.Logger) (server.Config, error) {
	c := server.DefaultConfig()
	var zero server.Config
	if _, err := os.Stat("config.toml"); os.IsNotExist(err) {
		data, err := toml.Marshal(c)
		if err != nil {
			return zero, fmt.Errorf("encode default config: %w", err)
		}
		if err := os.WriteFile("config.toml", data, 0644); err != nil {
			return zero, fmt.Errorf("create default config: %w", err)
		}
		return c.Config(l)
	}
	data, err := os.ReadFile("config.toml")
	if err != nil {
		return zero, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return zero, fmt.Errorf("decode config: %w", err)
	}
	return c.Config(l)
}
