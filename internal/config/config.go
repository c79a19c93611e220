package config

import (
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

type DiagramConfig struct {
	MaxColumns int  `yaml:"maxColumns"`
	Color      bool `yaml:"color"`
}

// Config holds the settings shared by the CLI, the batch driver and the
// viewer.
type Config struct {
	Workers     int           `yaml:"workers"`
	Timeout     Duration      `yaml:"timeout"`
	StrictCalls bool          `yaml:"strictCalls"`
	Debug       bool          `yaml:"debug"`
	Diagram     DiagramConfig `yaml:"diagram"`
}

// Duration is a time.Duration written as a string such as "10s" in YAML.
type Duration time.Duration

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return errors.Wrap(err, "unmarshal duration")
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "parse duration %q", s)
	}
	*d = Duration(parsed)
	return nil
}

func Default() *Config {
	return &Config{
		Workers: runtime.GOMAXPROCS(0),
		Timeout: Duration(10 * time.Second),
		Diagram: DiagramConfig{Color: true},
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Timeout < 0 {
		return errors.Errorf("timeout must not be negative, got %s", time.Duration(c.Timeout))
	}
	if c.Diagram.MaxColumns < 0 {
		return errors.Errorf("diagram.maxColumns must not be negative, got %d", c.Diagram.MaxColumns)
	}
	return nil
}

// Save writes c to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "save config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "save config")
}

func (c *Config) CreateLogger() (*zap.Logger, error) {
	var logger *zap.Logger
	var err error
	if c.Debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}

	return logger, errors.Wrap(err, "create logger")
}
