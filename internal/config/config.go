package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. VLAB_SPEED.
const EnvPrefix = "VLAB"

const (
	DefaultPractical = "vertical"
	DefaultMode      = "example"
	DefaultSpeed     = 10
	DefaultLED       = 700.0
	DefaultFPS       = 30
	DefaultDataDir   = "data"
	DefaultLogLevel  = "info"
	DefaultGravity   = 9.81
	DefaultScale     = 503.0
)

type Config struct {
	Practical string        `yaml:"practical" envconfig:"PRACTICAL"`
	Mode      string        `yaml:"mode" envconfig:"MODE"`
	Speed     int           `yaml:"speed" envconfig:"SPEED"`
	LED       float64       `yaml:"led" envconfig:"LED"`
	FPS       int           `yaml:"fps" envconfig:"FPS"`
	DataDir   string        `yaml:"data_dir" envconfig:"DATA_DIR"`
	LogLevel  string        `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFile   string        `yaml:"log_file" envconfig:"LOG"`
	Physics   PhysicsConfig `yaml:"physics" envconfig:"PHYSICS"`
}

// PhysicsConfig holds the constants used to turn scene geometry into
// animation durations.
type PhysicsConfig struct {
	Gravity float64 `yaml:"gravity" envconfig:"GRAVITY"`
	Scale   float64 `yaml:"scale" envconfig:"SCALE"`
}

func DefaultConfig() *Config {
	return &Config{
		Practical: DefaultPractical,
		Mode:      DefaultMode,
		Speed:     DefaultSpeed,
		LED:       DefaultLED,
		FPS:       DefaultFPS,
		DataDir:   DefaultDataDir,
		LogLevel:  DefaultLogLevel,
		Physics: PhysicsConfig{
			Gravity: DefaultGravity,
			Scale:   DefaultScale,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overlays any VLAB_* variables present in the environment onto
// cfg. Unset variables leave the existing values alone.
func (c *Config) ApplyEnv() error {
	return envconfig.Process(EnvPrefix, c)
}

// Resolve loads path when it is non-empty, falls back to the defaults
// otherwise, and applies environment overrides last.
func Resolve(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}
