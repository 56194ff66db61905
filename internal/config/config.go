package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rogersnm/opbatch/internal/units"
	"github.com/rogersnm/opbatch/internal/validate"
	"gopkg.in/yaml.v3"
)

const (
	FileName  = "config.yaml"
	EnvPrefix = "OPBATCH_"
)

type Config struct {
	DPI          float64 `yaml:"dpi"`
	PageWidth    float64 `yaml:"page_width"`
	PageHeight   float64 `yaml:"page_height"`
	Strict       bool    `yaml:"strict"`
	DefaultBatch string  `yaml:"default_batch,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DPI:        units.DefaultDPI,
		PageWidth:  validate.DefaultOptions.PageWidthPt,
		PageHeight: validate.DefaultOptions.PageHeightPt,
	}
}

// Load layers defaults, dataDir/config.yaml and OPBATCH_* environment
// variables, later sources winning. A missing file is not an error.
func Load(dataDir string) (*Config, error) {
	k := koanf.New(".")

	d := Defaults()
	defaults := map[string]interface{}{
		"dpi":         d.DPI,
		"page_width":  d.PageWidth,
		"page_height": d.PageHeight,
		"strict":      d.Strict,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	path := filepath.Join(dataDir, FileName)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	conf := koanf.UnmarshalConf{
		Tag: "yaml",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, conf); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

func Save(dataDir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(dataDir, FileName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ValidatorOptions returns the page size validators check bounds against.
func (c *Config) ValidatorOptions() validate.Options {
	return validate.Options{PageWidthPt: c.PageWidth, PageHeightPt: c.PageHeight}
}
