// Package config loads dfakit settings from dfakit.yaml and DFAKIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "dfakit.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DFAKIT_"

// Config is the resolved dfakit configuration.
type Config struct {
	Log    string      `mapstructure:"log" yaml:"log"`
	Strict bool        `mapstructure:"strict" yaml:"strict"`
	Store  StoreConfig `mapstructure:"store" yaml:"store"`
	HTTP   HTTPConfig  `mapstructure:"http" yaml:"http"`
}

// StoreConfig selects and configures the automaton store.
type StoreConfig struct {
	Backend string      `mapstructure:"backend" yaml:"backend"` // memory, file or redis
	Dir     string      `mapstructure:"dir" yaml:"dir"`
	Redis   RedisConfig `mapstructure:"redis" yaml:"redis"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Log:    "info",
		Strict: true,
		Store: StoreConfig{
			Backend: BackendFile,
			Dir:     ".dfakit/automata",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
	}
}

// envKeys maps environment variables to config paths.
var envKeys = map[string][]string{
	"LOG":            {"log"},
	"STRICT":         {"strict"},
	"STORE_BACKEND":  {"store", "backend"},
	"STORE_DIR":      {"store", "dir"},
	"REDIS_ADDR":     {"store", "redis", "addr"},
	"REDIS_PASSWORD": {"store", "redis", "password"},
	"REDIS_DB":       {"store", "redis", "db"},
	"REDIS_PREFIX":   {"store", "redis", "prefix"},
	"REDIS_TTL":      {"store", "redis", "ttl"},
	"HTTP_ADDR":      {"http", "addr"},
}

// Load resolves the configuration: defaults, then the file at path, then the environment.
// An empty path looks for DefaultPath and tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	raw := map[string]any{}

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnv(raw, os.LookupEnv)

	cfg := Default()
	if err := decode(raw, cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

func applyEnv(raw map[string]any, lookup func(string) (string, bool)) {
	for suffix, path := range envKeys {
		if v, ok := lookup(EnvPrefix + suffix); ok {
			setPath(raw, path, v)
		}
	}
}

func setPath(m map[string]any, path []string, v any) {
	for _, key := range path[:len(path)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[key] = next
		}
		m = next
	}
	m[path[len(path)-1]] = v
}

// Validate reports settings no component could honour.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Store.Backend) {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Store.Backend)
	}
	if c.Store.Redis.TTL < 0 {
		return fmt.Errorf("negative redis ttl: %s", c.Store.Redis.TTL)
	}
	return nil
}
