package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/engine"
)

// LoadEngine overlays an optional YAML file onto an adapter's default
// engine configuration. A missing file leaves the defaults as-is; a
// present file may override any subset of the tuning knobs.
func LoadEngine(path string, defaults engine.Config) (engine.Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return engine.Config{}, fmt.Errorf("load engine defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return engine.Config{}, fmt.Errorf("load engine config %s: %w", path, err)
			}
		}
	}

	var cfg engine.Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return engine.Config{}, fmt.Errorf("unmarshal engine config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return engine.Config{}, fmt.Errorf("engine config %s: %w", path, err)
	}
	return cfg, nil
}
