package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func TestSanity(t *testing.T) {
	cfg, err := Unmarshal("../../cfg/config.default.toml")
	if err != nil {
		t.Fatalf("Can't unmarshal, err: %s", err)
	}
	pretty, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("Can't marshal, err: %s", err)
	}
	t.Logf("Config: %s\n", string(pretty))
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.toml")
	err := CreateDefault(path)
	if err != nil {
		t.Fatalf("Can't create empty config: %s", err)
	}
	cfg, err := Unmarshal(path)
	if err != nil {
		t.Fatalf("Can't read back the default config: %s", err)
	}
	if *cfg != *Default() {
		t.Fatalf("Default config changed on the round trip: %+v", cfg)
	}
}

func TestPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	data := []byte("[search]\nmode = \"single\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Can't write config: %s", err)
	}
	cfg, err := Unmarshal(path)
	if err != nil {
		t.Fatalf("Can't unmarshal: %s", err)
	}
	if cfg.Search.Mode != "single" || cfg.Search.Workers != Default().Search.Workers {
		t.Fatalf("Defaults not kept: %+v", cfg.Search)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigFile)
	}{
		{"no input", func(c *ConfigFile) { c.Input.Path = "" }},
		{"bad mode", func(c *ConfigFile) { c.Search.Mode = "sideways" }},
		{"negative workers", func(c *ConfigFile) { c.Search.Workers = -1 }},
		{"render without scale", func(c *ConfigFile) { c.Render.Enabled = true; c.Render.Scale = 0 }},
		{"publish without topic", func(c *ConfigFile) { c.Publish.Enabled = true; c.Publish.Topic = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ERR_VALUE) {
				t.Fatalf("Expected %v, got %v", ERR_VALUE, err)
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default config is invalid: %s", err)
	}
}
