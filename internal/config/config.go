package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/reconcile/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vdomctl.json"

	// DefaultAddr is the default listen address of vdomctl serve.
	DefaultAddr = "localhost:3000"

	// DefaultInterval is the default delay between served frames.
	DefaultInterval = time.Second

	// DefaultNamespace is the default Prometheus metric namespace.
	DefaultNamespace = "vdom"

	// DefaultSnapshotDir is the default local snapshot directory.
	DefaultSnapshotDir = ".snapshots"
)

// Config represents the complete vdomctl.json configuration.
type Config struct {
	// Log contains logging configuration.
	Log LogConfig `json:"log"`

	// Render contains HTML output configuration.
	Render RenderConfig `json:"render"`

	// Serve contains the preview server configuration.
	Serve ServeConfig `json:"serve"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics"`

	// Snapshot contains snapshot store configuration.
	Snapshot SnapshotConfig `json:"snapshot"`

	// configPath is the path to the loaded config file.
	configPath string
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty"`
}

// RenderConfig configures HTML serialization.
type RenderConfig struct {
	// Pretty enables indented output.
	Pretty bool `json:"pretty,omitempty"`

	// Indent is the per-level indent used when Pretty is set.
	Indent string `json:"indent,omitempty"`
}

// ServeConfig configures vdomctl serve.
type ServeConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty"`

	// Interval is the delay between frames, as a Go duration string.
	Interval string `json:"interval,omitempty"`
}

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Enabled registers the reconciler metrics and exposes /metrics.
	Enabled bool `json:"enabled"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty"`
}

// SnapshotConfig selects where snapshots are stored.
type SnapshotConfig struct {
	// Dir is the local snapshot directory, used when S3.Bucket is empty.
	Dir string `json:"dir,omitempty"`

	// S3 stores snapshots in a bucket instead of Dir.
	S3 S3Config `json:"s3,omitempty"`
}

// S3Config locates an S3 bucket.
type S3Config struct {
	Bucket   string `json:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty"`
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Render: RenderConfig{
			Indent: "  ",
		},
		Serve: ServeConfig{
			Addr:     DefaultAddr,
			Interval: DefaultInterval.String(),
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Snapshot: SnapshotConfig{
			Dir: DefaultSnapshotDir,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for vdomctl.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E021").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Run 'vdomctl config init' or pass --config")
		}
		return nil, errors.New("E020").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E020").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads dir/vdomctl.json, falling back to New when the file
// does not exist. Relative paths of the fallback resolve against dir.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if errors.HasCode(err, "E021") {
		cfg = New()
		cfg.configPath = filepath.Join(dir, ConfigFileName)
		return cfg, nil
	}
	return cfg, err
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E020").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E020").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from or would be saved to.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Render.Pretty && c.Render.Indent == "" {
		c.Render.Indent = "  "
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultAddr
	}
	if c.Serve.Interval == "" {
		c.Serve.Interval = DefaultInterval.String()
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Snapshot.Dir == "" {
		c.Snapshot.Dir = DefaultSnapshotDir
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	d, err := time.ParseDuration(c.Serve.Interval)
	if err != nil {
		return errors.New("E022").
			WithDetail("serve.interval: " + err.Error())
	}
	if d <= 0 {
		return errors.New("E022").
			WithDetail("serve.interval must be positive")
	}
	if strings.ContainsAny(c.Metrics.Namespace, " -.") {
		return errors.New("E022").
			WithDetail("metrics.namespace may only contain letters, digits and underscores")
	}
	if c.Snapshot.S3.Bucket != "" && c.Snapshot.S3.Region == "" {
		return errors.New("E022").
			WithDetail("snapshot.s3.region is required when a bucket is set")
	}
	return nil
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	l, _ := parseLevel(c.Log.Level)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, errors.New("E022").
			WithDetail("log.level: unknown level " + s).
			WithSuggestion("Use debug, info, warn or error")
	}
	return l, nil
}

// Interval returns serve.interval as a duration.
func (c *Config) Interval() time.Duration {
	d, err := time.ParseDuration(c.Serve.Interval)
	if err != nil || d <= 0 {
		return DefaultInterval
	}
	return d
}

// SnapshotPath returns the absolute path to the snapshot directory.
func (c *Config) SnapshotPath() string {
	if filepath.IsAbs(c.Snapshot.Dir) {
		return c.Snapshot.Dir
	}
	return filepath.Join(c.Dir(), c.Snapshot.Dir)
}

// UsesS3 reports whether snapshots go to S3 rather than disk.
func (c *Config) UsesS3() bool {
	return c.Snapshot.S3.Bucket != ""
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
