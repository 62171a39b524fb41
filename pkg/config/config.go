// Package config loads the process-wide translation form defaults from the
// environment and from YAML files, and per-entity build options from YAML or
// JSON documents.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formgen-translations/pkg/model"
)

// Defaults are injected once into the assembler.
type Defaults struct {
	DefaultLocale string   `env:"TRANSLATIONS_DEFAULT_LOCALE" envDefault:"en" yaml:"default_locale"`
	Locales       []string `env:"TRANSLATIONS_LOCALES" envSeparator:"," yaml:"locales"`
	Required      bool     `env:"TRANSLATIONS_REQUIRED" yaml:"required"`
}

// FromEnv reads Defaults from the process environment.
func FromEnv() (Defaults, error) {
	var defaults Defaults
	if err := env.Parse(&defaults); err != nil {
		return Defaults{}, fmt.Errorf("config: parse env: %w", err)
	}
	return defaults.normalise(), nil
}

// FromEnvMap reads Defaults from the supplied variables instead of the
// process environment.
func FromEnvMap(vars map[string]string) (Defaults, error) {
	var defaults Defaults
	if err := env.ParseWithOptions(&defaults, env.Options{Environment: vars}); err != nil {
		return Defaults{}, fmt.Errorf("config: parse env: %w", err)
	}
	return defaults.normalise(), nil
}

// Load reads Defaults from the environment, then applies path on top when
// it is not empty. Values present in the file win.
func Load(path string) (Defaults, error) {
	defaults, err := FromEnv()
	if err != nil {
		return Defaults{}, err
	}
	if strings.TrimSpace(path) == "" {
		return defaults, nil
	}
	return LoadFile(path, defaults)
}

// LoadFile decodes a YAML defaults file over base.
func LoadFile(path string, base Defaults) (Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	out := base
	out.Locales = append([]string(nil), base.Locales...)
	if err := yaml.Unmarshal(data, &out); err != nil {
		return Defaults{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return out.normalise(), nil
}

// LoadOptions reads per-build options from a YAML or JSON file.
func LoadOptions(path string) (model.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Options{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	opts, err := ParseOptions(data)
	if err != nil {
		return model.Options{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return opts, nil
}

// ParseOptions decodes per-build options. JSON input is accepted because it
// is valid YAML.
func ParseOptions(data []byte) (model.Options, error) {
	var opts model.Options
	if len(strings.TrimSpace(string(data))) == 0 {
		return opts, nil
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return model.Options{}, fmt.Errorf("parse options: %w", err)
	}
	return opts, nil
}

func (d Defaults) normalise() Defaults {
	d.DefaultLocale = strings.TrimSpace(d.DefaultLocale)
	locales := make([]string, 0, len(d.Locales))
	for _, locale := range d.Locales {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			locales = append(locales, trimmed)
		}
	}
	if len(locales) == 0 {
		locales = nil
	}
	d.Locales = locales
	return d
}
