package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/poiesic/omnisearch/fetch"
	"github.com/poiesic/omnisearch/variant"
	"gopkg.in/yaml.v3"
)

// Policy names accepted by Config.Policy.
const (
	PolicyDefault = "default"
	PolicyExact   = "exact"
)

// Config holds settings shared by the omnisearch commands.
type Config struct {
	// BaseURL is the origin every source endpoint is resolved against.
	// Example: "http://localhost:8000"
	BaseURL string `yaml:"base_url"`

	// Timeout bounds a single source request.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// Debounce is the quiet interval before interactive input is submitted.
	// Default: 300ms
	Debounce time.Duration `yaml:"debounce"`

	// PoolSize is the number of concurrent source requests.
	// Zero sizes the pool from the number of sources.
	PoolSize int `yaml:"pool_size"`

	// MaxPerSource caps the results kept from each source. Zero keeps all.
	MaxPerSource int `yaml:"max_per_source"`

	// Policy selects the query variant policy: "default" or "exact".
	Policy string `yaml:"policy"`

	// CatalogPath is the badger directory holding the development catalog.
	CatalogPath string `yaml:"catalog_path"`

	// ListenAddr is where the development catalog server listens.
	ListenAddr string `yaml:"listen_addr"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithBaseURL sets the source base URL.
func WithBaseURL(baseURL string) ConfigOption {
	return func(c *Config) {
		c.BaseURL = baseURL
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithDebounce sets the interactive debounce interval.
func WithDebounce(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Debounce = d
	}
}

// WithPoolSize sets the number of concurrent source requests.
func WithPoolSize(n int) ConfigOption {
	return func(c *Config) {
		c.PoolSize = n
	}
}

// WithMaxPerSource caps the results kept from each source.
func WithMaxPerSource(n int) ConfigOption {
	return func(c *Config) {
		c.MaxPerSource = n
	}
}

// WithPolicy selects the variant policy by name.
func WithPolicy(name string) ConfigOption {
	return func(c *Config) {
		c.Policy = name
	}
}

// WithCatalogPath sets the development catalog directory.
func WithCatalogPath(path string) ConfigOption {
	return func(c *Config) {
		c.CatalogPath = path
	}
}

// WithListenAddr sets the development server address.
func WithListenAddr(addr string) ConfigOption {
	return func(c *Config) {
		c.ListenAddr = addr
	}
}

// DefaultConfig returns a Config pointing at a local development catalog.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "http://localhost:8000",
		Timeout:     10 * time.Second,
		Debounce:    300 * time.Millisecond,
		Policy:      PolicyDefault,
		CatalogPath: ".omnisearch/catalog",
		ListenAddr:  "localhost:8000",
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Load reads a YAML document over the defaults. Unknown keys are rejected.
func Load(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// LoadFile reads a YAML config file over the defaults.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Normalize puts the configuration in canonical form.
func (c *Config) Normalize() {
	c.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.BaseURL), "/")
	c.Policy = strings.ToLower(strings.TrimSpace(c.Policy))
	if c.Policy == "" {
		c.Policy = PolicyDefault
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration first.
func (c *Config) Validate() error {
	c.Normalize()

	if c.BaseURL == "" {
		return fmt.Errorf("%w: base_url is required", ErrInvalidConfig)
	}
	if u, err := url.Parse(c.BaseURL); err != nil || !u.IsAbs() {
		return fmt.Errorf("%w: base_url %q must be an absolute URL", ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("%w: debounce cannot be negative", ErrInvalidConfig)
	}
	if c.PoolSize < 0 {
		return fmt.Errorf("%w: pool_size cannot be negative", ErrInvalidConfig)
	}
	if c.MaxPerSource < 0 {
		return fmt.Errorf("%w: max_per_source cannot be negative", ErrInvalidConfig)
	}
	if _, err := c.VariantPolicy(); err != nil {
		return err
	}
	return nil
}

// VariantPolicy resolves Policy.
func (c *Config) VariantPolicy() (variant.Policy, error) {
	switch c.Policy {
	case PolicyDefault, "":
		return variant.Default(), nil
	case PolicyExact:
		return variant.Exact(), nil
	}
	return variant.Policy{}, fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, c.Policy)
}

// Fetch returns the transport configuration.
func (c *Config) Fetch() fetch.Config {
	return fetch.Config{
		BaseURL: c.BaseURL,
		Timeout: c.Timeout,
	}
}
