package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml"
	log "github.com/sirupsen/logrus"
)

// ErrInvalid is returned when a configuration file holds values that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config is the configuration of the SavePlayers plugin.
type Config struct {
	// Directory is the directory player files are written to.
	Directory string `toml:"Directory" comment:"Directory player files are written to." validate:"required"`
	// FilePattern is the file name of a player file. %s is replaced by the name of the player.
	FilePattern string `toml:"FilePattern" comment:"File name of a player file, %s is replaced by the player name." validate:"required,contains=%s"`
	// Command is the name of the command that saves all players.
	Command string `toml:"Command" comment:"Name of the command that saves all online players." validate:"required,alphanum"`
	// Operators are the names of the players allowed to run the command.
	Operators []string `toml:"Operators" comment:"Names of the players allowed to run the command." validate:"dive,required"`
	// RenamesFile is an optional JSON file replacing the item identifier rename rules.
	RenamesFile string `toml:"RenamesFile" comment:"Optional JSON file replacing the item identifier rename rules."`
	// LogLevel is the level of the plugin logger.
	LogLevel string `toml:"LogLevel" comment:"One of trace, debug, info, warn or error." validate:"oneof=trace debug info warn error"`
}

// Default returns the configuration used when no configuration file exists.
func Default() Config {
	return Config{
		Directory:   filepath.Join("plugins", "SavePlayers"),
		FilePattern: "player-%s.json",
		Command:     "saveinv",
		Operators:   []string{},
		LogLevel:    "info",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration for values that cannot be used.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fields := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, fmt.Sprintf("%v (%v)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %v", ErrInvalid, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Level returns the logrus level of LogLevel.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Operator checks if the player with the name passed is allowed to run the command. Names are matched case
// insensitively.
func (c Config) Operator(name string) bool {
	return slices.ContainsFunc(c.Operators, func(op string) bool {
		return strings.EqualFold(op, name)
	})
}

// Load reads the configuration at path. If the file does not exist, it is created holding the default
// configuration, which is then returned.
func Load(path string) (Config, error) {
	c := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		data, err := toml.Marshal(c)
		if err != nil {
			return c, fmt.Errorf("encode default config: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return c, fmt.Errorf("create config directory: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return c, fmt.Errorf("create default config: %w", err)
		}
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, c.Validate()
}
