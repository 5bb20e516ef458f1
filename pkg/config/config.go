package config

import (
	// stdlib
	"errors"
	"fmt"
	"os"

	// internal
	"github.com/Robogera/hillclimb/pkg/enums"

	// external
	"github.com/pelletier/go-toml/v2"
)

var (
	ERR_VALUE = errors.New("Bad value")
)

// Config file structure

type ConfigFile struct {
	Input   InputConfig
	Search  SearchConfig
	Render  RenderConfig
	Logging LoggingConfig
	Publish PublishConfig
}

type InputConfig struct {
	// relative paths are resolved against the config file's directory
	Path string
}

type SearchConfig struct {
	Mode       string
	// parallel searches in "lowest" mode, 0 means unlimited
	Workers    int
	// run a reverse search to double check the "lowest" result
	CrossCheck bool `toml:"cross_check"`
}

type RenderConfig struct {
	Enabled   bool
	Path      string
	Scale     int
	Low       string
	High      string
	PathColor string `toml:"path_color"`
}

type LoggingConfig struct {
	Level string
}

type PublishConfig struct {
	Enabled    bool
	Address    string
	Topic      string
	ClientID   string `toml:"client_id"`
	TimeoutSec uint   `toml:"timeout_sec"`
}

func Default() *ConfigFile {
	return &ConfigFile{
		Input: InputConfig{Path: "input.txt"},
		Search: SearchConfig{
			Mode:    enums.ModeBoth.Value,
			Workers: 4,
		},
		Render: RenderConfig{
			Path:      "path.png",
			Scale:     8,
			Low:       "#1d3557",
			High:      "#f1faee",
			PathColor: "#e63946",
		},
		Logging: LoggingConfig{Level: enums.LoggingLevelInfo.Value},
		Publish: PublishConfig{
			Address:    "127.0.0.1:1883",
			Topic:      "hillclimb/result",
			ClientID:   "hillclimb",
			TimeoutSec: 5,
		},
	}
}

func Unmarshal(file_path string) (*ConfigFile, error) {
	config_file := Default()
	data, err := os.ReadFile(file_path)
	if err != nil {
		return nil,
			fmt.Errorf("Unable to read %s error: %w", file_path, err)
	}
	err = toml.Unmarshal(data, config_file)
	if err != nil {
		return nil,
			fmt.Errorf("Unable to unmarshal %s error: %w", file_path, err)
	}
	if err := config_file.Validate(); err != nil {
		return nil,
			fmt.Errorf("Invalid config %s error: %w", file_path, err)
	}
	return config_file, nil
}

func (c *ConfigFile) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("Empty input path: %w", ERR_VALUE)
	}
	if enums.SearchModes.Parse(c.Search.Mode) == nil {
		return fmt.Errorf("Unknown search mode %q: %w", c.Search.Mode, ERR_VALUE)
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("Negative worker count %d: %w", c.Search.Workers, ERR_VALUE)
	}
	if c.Render.Enabled && (c.Render.Path == "" || c.Render.Scale <= 0) {
		return fmt.Errorf("Render needs a path and a positive scale: %w", ERR_VALUE)
	}
	if c.Publish.Enabled && (c.Publish.Address == "" || c.Publish.Topic == "") {
		return fmt.Errorf("Publish needs an address and a topic: %w", ERR_VALUE)
	}
	return nil
}

// Writes the default config to file_path
func CreateDefault(file_path string) error {
	data, err := toml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("Unable to marshal default config error: %w", err)
	}
	if err := os.WriteFile(file_path, data, 0o644); err != nil {
		return fmt.Errorf("Unable to write %s error: %w", file_path, err)
	}
	return nil
}
