package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/platinummonkey/pkgcycle/pkg/dependencies"
	"github.com/platinummonkey/pkgcycle/pkg/observability"
	"github.com/platinummonkey/pkgcycle/pkg/scanner"
	"gopkg.in/yaml.v3"
)

// DefaultSourceRoot is the source directory relative to the project base directory
const DefaultSourceRoot = "src/main/java"

// FileNames are the configuration file names searched by LoadFromDir, in order
var FileNames = []string{"pkgcycle.yaml", "pkgcycle.yml", ".pkgcycle.yaml", ".pkgcycle.yml"}

// Config holds the cyclic dependency check configuration
type Config struct {
	ProjectName     string   `yaml:"projectName"`
	SourceRoot      string   `yaml:"sourceRoot"`
	FileSuffix      string   `yaml:"fileSuffix"`
	MaxDepth        int      `yaml:"maxDepth"`
	ExcludePatterns []string `yaml:"excludePatterns"`
	FailOnError     bool     `yaml:"failOnError"`
	Traversal       string   `yaml:"traversal"`

	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus textfile written after each run
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// TracingConfig configures OpenTelemetry tracing
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"serviceName"`
	Insecure    bool   `yaml:"insecure"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		ProjectName:     "Unknown Project",
		SourceRoot:      DefaultSourceRoot,
		FileSuffix:      scanner.DefaultSuffix,
		MaxDepth:        dependencies.DefaultMaxDepth,
		ExcludePatterns: []string{},
		FailOnError:     true,
		Traversal:       string(dependencies.TraversalShared),
		Log: LogConfig{
			Level:  "info",
			Format: observability.FormatText,
		},
		Tracing: TracingConfig{
			Endpoint:    "localhost:4317",
			ServiceName: "pkgcycle",
			Insecure:    true,
		},
	}
}

// Load reads a configuration file. Fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir searches dir for a configuration file and loads the first one
// found. It returns the defaults when there is none.
func LoadFromDir(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return Default(), nil
}

// Save writes the configuration to path
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LoadDotEnv loads variables from .env files into the environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from PKGCYCLE_* environment variables
func (c *Config) ApplyEnv() error {
	c.ProjectName = getEnv("PKGCYCLE_PROJECT_NAME", c.ProjectName)
	c.SourceRoot = getEnv("PKGCYCLE_SOURCE_ROOT", c.SourceRoot)
	c.FileSuffix = getEnv("PKGCYCLE_FILE_SUFFIX", c.FileSuffix)
	c.Traversal = getEnv("PKGCYCLE_TRAVERSAL", c.Traversal)

	maxDepth, err := getEnvInt("PKGCYCLE_MAX_DEPTH", c.MaxDepth)
	if err != nil {
		return err
	}
	c.MaxDepth = maxDepth

	if patterns, ok := os.LookupEnv("PKGCYCLE_EXCLUDE_PATTERNS"); ok {
		c.ExcludePatterns = splitPatterns(patterns)
	}

	c.FailOnError = getEnvBool("PKGCYCLE_FAIL_ON_ERROR", c.FailOnError)

	c.Log.Level = getEnv("PKGCYCLE_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("PKGCYCLE_LOG_FORMAT", c.Log.Format)
	c.Metrics.Textfile = getEnv("PKGCYCLE_METRICS_TEXTFILE", c.Metrics.Textfile)

	c.Tracing.Enabled = getEnvBool("PKGCYCLE_OTEL_ENABLED", c.Tracing.Enabled)
	c.Tracing.Endpoint = getEnv("PKGCYCLE_OTEL_ENDPOINT", c.Tracing.Endpoint)
	c.Tracing.ServiceName = getEnv("PKGCYCLE_OTEL_SERVICE_NAME", c.Tracing.ServiceName)
	c.Tracing.Insecure = getEnvBool("PKGCYCLE_OTEL_INSECURE", c.Tracing.Insecure)

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("maxDepth must be at least 1, got %d", c.MaxDepth)
	}
	if _, err := dependencies.ParseTraversalMode(c.Traversal); err != nil {
		return err
	}
	if c.SourceRoot == "" {
		return fmt.Errorf("sourceRoot is required")
	}
	if c.FileSuffix == "" {
		return fmt.Errorf("fileSuffix is required")
	}
	if err := observability.ValidateFormat(c.Log.Format); err != nil {
		return err
	}
	if c.Tracing.Enabled {
		if c.Tracing.Endpoint == "" {
			return fmt.Errorf("tracing endpoint is required when tracing is enabled")
		}
		if c.Tracing.ServiceName == "" {
			return fmt.Errorf("tracing service name is required when tracing is enabled")
		}
	}
	return nil
}

// TraversalMode returns the parsed traversal mode, falling back to shared
func (c *Config) TraversalMode() dependencies.TraversalMode {
	mode, err := dependencies.ParseTraversalMode(c.Traversal)
	if err != nil {
		return dependencies.TraversalShared
	}
	return mode
}

// ObservabilityTracing converts the tracing section for observability.InitTracing
func (c *Config) ObservabilityTracing(version string) observability.TracingConfig {
	return observability.TracingConfig{
		Enabled:        c.Tracing.Enabled,
		Endpoint:       c.Tracing.Endpoint,
		ServiceName:    c.Tracing.ServiceName,
		ServiceVersion: version,
		Insecure:       c.Tracing.Insecure,
	}
}

// CacheID identifies the rule settings. Two configurations with the same
// CacheID produce the same result for the same sources.
func (c *Config) CacheID() string {
	return fmt.Sprintf("NoCyclicPackageDependencyRule:%s:%d:[%s]:%t:%s",
		c.ProjectName,
		c.MaxDepth,
		strings.Join(c.ExcludePatterns, ", "),
		c.FailOnError,
		c.TraversalMode(),
	)
}

// ResolveSourceRoot joins a relative SourceRoot onto baseDir
func (c *Config) ResolveSourceRoot(baseDir string) string {
	if filepath.IsAbs(c.SourceRoot) {
		return c.SourceRoot
	}
	return filepath.Join(baseDir, c.SourceRoot)
}

// Clone returns a deep copy
func (c *Config) Clone() *Config {
	out := *c
	out.ExcludePatterns = append([]string(nil), c.ExcludePatterns...)
	return &out
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

// splitPatterns splits one pattern per line when value spans lines, and on
// commas otherwise. Blank entries are dropped.
func splitPatterns(value string) []string {
	sep := ","
	if strings.Contains(value, "\n") {
		sep = "\n"
	}
	parts := strings.Split(value, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
