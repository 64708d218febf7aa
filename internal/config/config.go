package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/qszone/internal/errors"
	"github.com/vango-dev/qszone/pkg/zone"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the name of the configuration file looked up by Load.
	ConfigFileName = "qszone.json"

	// DefaultAddr is the default HTTP listen address.
	DefaultAddr = ":8080"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "qszone"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "qszone"

	// DefaultBufferSize is the default websocket read/write buffer size.
	DefaultBufferSize = 1024
)

// Config represents the complete qszone configuration.
type Config struct {
	// Server contains HTTP and websocket settings.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Tracing contains OpenTelemetry settings.
	Tracing TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty"`

	// Zones are the named zones available to links.
	Zones []ZoneConfig `json:"zones,omitempty" yaml:"zones,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// ReadBufferSize and WriteBufferSize size the websocket buffers.
	ReadBufferSize  int `json:"readBufferSize,omitempty" yaml:"readBufferSize,omitempty"`
	WriteBufferSize int `json:"writeBufferSize,omitempty" yaml:"writeBufferSize,omitempty"`

	// AllowedOrigins restricts websocket origins. Empty allows same-origin only.
	AllowedOrigins []string `json:"allowedOrigins,omitempty" yaml:"allowedOrigins,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// ZoneConfig is one named zone.
type ZoneConfig struct {
	Name         string   `json:"name" yaml:"name"`
	NullKeys     []string `json:"nullKeys,omitempty" yaml:"nullKeys,omitempty"`
	DefaultKeys  []string `json:"defaultKeys,omitempty" yaml:"defaultKeys,omitempty"`
	DefaultValue string   `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
}

// Definition converts z to a zone.Definition.
func (z ZoneConfig) Definition() zone.Definition {
	return zone.Definition{
		Name:         z.Name,
		NullKeys:     append([]string(nil), z.NullKeys...),
		DefaultKeys:  append([]string(nil), z.DefaultKeys...),
		DefaultValue: z.DefaultValue,
	}
}

// New creates a configuration with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ReadBufferSize:  DefaultBufferSize,
			WriteBufferSize: DefaultBufferSize,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
	}
}

// Load reads qszone.json from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from path. The format is chosen by extension:
// .json, .yaml or .yml.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E001").
				WithDetail("No configuration found at " + path).
				WithSuggestion("Create qszone.json or pass --config with an existing file")
		}
		return nil, errors.New("E001").Wrap(err)
	}

	cfg, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// Parse decodes data, using name's extension to pick the format, then
// applies defaults and validates.
func Parse(name string, data []byte) (*Config, error) {
	cfg := New()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E002").
				Wrap(err).
				WithSuggestion("Check that " + filepath.Base(name) + " is valid JSON")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E002").
				WithLocationFromError(name, err).
				Wrap(err)
		}
	default:
		return nil, errors.New("E005").
			WithDetail("Cannot decode " + filepath.Base(name) + ": unknown extension")
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration as indented JSON.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Newf(errors.CategoryConfig, "encode config: %v", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Newf(errors.CategoryConfig, "write config: %v", err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadBufferSize == 0 {
		c.Server.ReadBufferSize = DefaultBufferSize
	}
	if c.Server.WriteBufferSize == 0 {
		c.Server.WriteBufferSize = DefaultBufferSize
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Addr == "" || c.Server.ReadBufferSize < 0 || c.Server.WriteBufferSize < 0 {
		return errors.New("E007")
	}

	seen := make(map[string]bool, len(c.Zones))
	for i, z := range c.Zones {
		if strings.TrimSpace(z.Name) == "" {
			return errors.New("E003").
				WithSuggestion("Give zone #" + strconv.Itoa(i+1) + " a name")
		}
		if seen[z.Name] {
			return errors.New("E004").
				WithSuggestion("Rename one of the zones called " + z.Name)
		}
		seen[z.Name] = true

		for _, keys := range [][]string{z.NullKeys, z.DefaultKeys} {
			for _, k := range keys {
				if k == "" {
					return errors.New("E003").
						WithSuggestion("Remove the empty key from zone " + z.Name)
				}
			}
		}
	}
	return nil
}

// Registry builds a zone registry from the configured zones.
func (c *Config) Registry() *zone.Registry {
	defs := make([]zone.Definition, 0, len(c.Zones))
	for _, z := range c.Zones {
		defs = append(defs, z.Definition())
	}
	return zone.NewRegistry(defs...)
}
