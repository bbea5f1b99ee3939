package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cuemby/hutch/pkg/types"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPollInterval is how often the reconciliation loop ticks
	DefaultPollInterval = 60 * time.Second

	// DefaultGracePeriod is how long an app must stay unobserved before
	// its records are deleted
	DefaultGracePeriod = 5 * time.Minute

	// DefaultGatewayTimeout bounds every DNS gateway request
	DefaultGatewayTimeout = 10 * time.Second

	// DefaultLookupTimeout bounds inventory and shard lookup requests
	DefaultLookupTimeout = 15 * time.Second

	// DefaultListenAddr is the front-door HTTP listen address
	DefaultListenAddr = ":8080"

	// DefaultZoneTTL is used when a zone omits its TTL
	DefaultZoneTTL = 60
)

// Duration is a time.Duration that unmarshals from YAML either as a Go
// duration string ("30s", "5m") or as a bare integer number of seconds
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var seconds int64
	if err := value.Decode(&seconds); err == nil {
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}

	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the duration as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// GatewayConfig holds DNS gateway connection settings. The gateway requires
// mutual TLS; when Enabled is false or credentials are missing the record
// client fails closed.
type GatewayConfig struct {
	URL      string   `yaml:"url"`
	Enabled  bool     `yaml:"enabled"`
	CertFile string   `yaml:"cert_file"`
	KeyFile  string   `yaml:"key_file"`
	CAFile   string   `yaml:"ca_file"`
	Timeout  Duration `yaml:"timeout"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Config is the full static configuration for Hutch
type Config struct {
	// PollInterval is the reconciliation tick interval
	PollInterval Duration `yaml:"poll_interval"`

	// GracePeriod is the minimum continuous absence before record deletion
	GracePeriod Duration `yaml:"grace_period"`

	// InventoryURL is the base URL of the network's directory service
	InventoryURL string `yaml:"inventory_url"`

	// LookupTimeout bounds inventory and endpoint lookup requests
	LookupTimeout Duration `yaml:"lookup_timeout"`

	// Prefixes are the qualifying application name prefixes, matched
	// case-insensitively
	Prefixes []string `yaml:"prefixes"`

	// Zones are the DNS zones to keep synchronized
	Zones []types.ZoneConfig `yaml:"zones"`

	// Gateway configures the mTLS DNS gateway client
	Gateway GatewayConfig `yaml:"gateway"`

	// ListenAddr is the front-door HTTP listen address
	ListenAddr string `yaml:"listen_addr"`

	// JournalPath is the bbolt mutation journal file; empty disables the
	// journal
	JournalPath string `yaml:"journal_path"`

	// Log configures logging
	Log LogConfig `yaml:"log"`
}

// Load reads, defaults, and validates a YAML config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills in zero-valued fields
func (c *Config) ApplyDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = Duration(DefaultPollInterval)
	}
	if c.GracePeriod <= 0 {
		c.GracePeriod = Duration(DefaultGracePeriod)
	}
	if c.LookupTimeout <= 0 {
		c.LookupTimeout = Duration(DefaultLookupTimeout)
	}
	if c.Gateway.Timeout <= 0 {
		c.Gateway.Timeout = Duration(DefaultGatewayTimeout)
	}
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	for i := range c.Zones {
		if c.Zones[i].TTL <= 0 {
			c.Zones[i].TTL = DefaultZoneTTL
		}
	}
}

// Validate checks the configuration for mistakes that would make the
// reconciler misbehave silently
func (c *Config) Validate() error {
	if c.InventoryURL == "" {
		return fmt.Errorf("inventory_url is required")
	}
	if len(c.Zones) == 0 {
		return fmt.Errorf("at least one zone is required")
	}
	seen := make(map[string]bool)
	for _, zone := range c.Zones {
		if zone.Name == "" {
			return fmt.Errorf("zone name is required")
		}
		if seen[zone.Name] {
			return fmt.Errorf("duplicate zone: %s", zone.Name)
		}
		seen[zone.Name] = true
		if strings.Count(zone.ShardURLPattern, "%d") != 1 {
			return fmt.Errorf("zone %s: shard_url_pattern must contain exactly one %%d", zone.Name)
		}
	}
	if c.Gateway.Enabled && c.Gateway.URL == "" {
		return fmt.Errorf("gateway.url is required when the gateway is enabled")
	}
	return nil
}
