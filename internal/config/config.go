// Package config loads the host configuration file.
//
// The file is YAML (or JSON, which YAML accepts). Top-level keys are the host
// settings; the optional "store", "display" and "server" sections pick the
// persistence backend, an external display command and the HTTP surface:
//
//	enabled: true
//	file_path: /tmp/marquee_msg.txt
//	position: bottom
//	width: 16
//	lines: 3
//	interval: 4
//	indent: 0
//	store:
//	  backend: sqlite
//	  path: /var/tmp/marquee.db
//	  encryption_key: <base64 AES-256 key>
//	display:
//	  command: /usr/local/bin/eink-write
//	  args: ["--panel", "0"]
//	  timeout: 2s
//	server:
//	  listen: ":8080"
//	  tick: 250ms
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Defaults for the server section.
const (
	DefaultListen = ":8080"
	DefaultTick   = 250 * time.Millisecond
)

// StoreConfig selects where settings and text are persisted.
type StoreConfig struct {
	Backend  string `mapstructure:"backend"`
	Path     string `mapstructure:"path"` // settings file (file) or database (sqlite)
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`

	// EncryptionKey enables at-rest encryption of the text (base64, 32 bytes).
	EncryptionKey string `mapstructure:"encryption_key"`
}

// DisplayConfig names an external command that receives every new chunk.
type DisplayConfig struct {
	Command string        `mapstructure:"command"`
	Args    []string      `mapstructure:"args"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig configures the HTTP surface and the display poll loop.
type ServerConfig struct {
	Listen string        `mapstructure:"listen"`
	Tick   time.Duration `mapstructure:"tick"`
}

// Config is the decoded configuration file.
type Config struct {
	Host    domain.HostConfig
	Store   StoreConfig
	Display DisplayConfig
	Server  ServerConfig
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Store:  StoreConfig{Backend: BackendFile},
		Server: ServerConfig{Listen: DefaultListen, Tick: DefaultTick},
	}
}

// Load reads path and decodes it on top of Default. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a configuration document on top of Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if raw == nil {
		return cfg, nil
	}

	host, err := domain.DecodeHostConfig(raw)
	if err != nil {
		return Config{}, err
	}
	cfg.Host = host

	if err := decodeSection(raw["store"], &cfg.Store); err != nil {
		return Config{}, fmt.Errorf("failed to decode store config: %w", err)
	}
	if err := decodeSection(raw["display"], &cfg.Display); err != nil {
		return Config{}, fmt.Errorf("failed to decode display config: %w", err)
	}
	if err := decodeSection(raw["server"], &cfg.Server); err != nil {
		return Config{}, fmt.Errorf("failed to decode server config: %w", err)
	}

	switch cfg.Store.Backend {
	case BackendFile, BackendMemory, BackendRedis, BackendSQLite:
	default:
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	return cfg, nil
}

func decodeSection(input any, output any) error {
	if input == nil {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		Result:           output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
