package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Environment variables read by Load.
const (
	EnvDebugAddr  = "HOSHIPAD_DEBUG_ADDR"
	EnvLog        = "HOSHIPAD_LOG"
	EnvIOTimeout  = "HOSHIPAD_IO_TIMEOUT"
	EnvKnownHosts = "HOSHIPAD_KNOWN_HOSTS"
	EnvSSHConfig  = "HOSHIPAD_SSH_CONFIG"
	EnvAgentSock  = "SSH_AUTH_SOCK"
)

// DefaultIOTimeout bounds a single file load or save.
const DefaultIOTimeout = 10 * time.Second

// Config holds application configuration. The editor keeps no state of its
// own on disk, so everything comes from the environment.
type Config struct {
	DebugAddr  string        // debug endpoint listen address; empty disables it
	LogPath    string        // overrides the default log location
	IOTimeout  time.Duration // per load/save
	KnownHosts string
	SSHConfig  string
	AgentSock  string
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads the configuration through getenv.
func LoadFrom(getenv func(string) string) (*Config, error) {
	home, _ := os.UserHomeDir()
	cfg := &Config{
		DebugAddr:  getenv(EnvDebugAddr),
		LogPath:    getenv(EnvLog),
		IOTimeout:  DefaultIOTimeout,
		KnownHosts: filepath.Join(home, ".ssh", "known_hosts"),
		SSHConfig:  filepath.Join(home, ".ssh", "config"),
		AgentSock:  getenv(EnvAgentSock),
	}

	if v := getenv(EnvIOTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvIOTimeout, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("%s: must be positive, got %s", EnvIOTimeout, v)
		}
		cfg.IOTimeout = d
	}
	if v := getenv(EnvKnownHosts); v != "" {
		cfg.KnownHosts = expandTilde(v, home)
	}
	if v := getenv(EnvSSHConfig); v != "" {
		cfg.SSHConfig = expandTilde(v, home)
	}
	return cfg, nil
}
