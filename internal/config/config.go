package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml/v2"
)

// Transport modes for the MCP server.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
	TransportHTTP  = "http"
)

// Log formats for console and file output.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config represents the application configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Databricks DatabricksConfig `toml:"databricks"`
	Logging    LoggingConfig    `toml:"logging"`
}

// ServerConfig contains MCP server settings.
type ServerConfig struct {
	Name      string `toml:"name"`
	Transport string `toml:"transport"` // stdio, sse, http
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
}

// Addr returns the listen address for the HTTP-based transports.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabricksConfig contains workspace connection settings.
// Either Token or ClientID+ClientSecret must be set.
type DatabricksConfig struct {
	Host         string `toml:"host"`
	Token        string `toml:"token"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	Timeout      string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *DatabricksConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 300 * time.Second
	}
	return d
}

// BaseURL returns the workspace URL with a scheme and without a trailing slash.
func (c *DatabricksConfig) BaseURL() string {
	host := strings.TrimRight(strings.TrimSpace(c.Host), "/")
	if host == "" {
		return ""
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	return host
}

// UsesOAuth reports whether OAuth machine-to-machine credentials are configured.
func (c *DatabricksConfig) UsesOAuth() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Format     string   `toml:"format"` // text, json
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files. Missing files are skipped.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
// DATABRICKS_* names match the ones used by the Databricks CLI and SDKs.
func applyEnvOverrides(config *Config) {
	if host := os.Getenv("DATABRICKS_HOST"); host != "" {
		config.Databricks.Host = host
	}
	if token := os.Getenv("DATABRICKS_TOKEN"); token != "" {
		config.Databricks.Token = token
	}
	if id := os.Getenv("DATABRICKS_CLIENT_ID"); id != "" {
		config.Databricks.ClientID = id
	}
	if secret := os.Getenv("DATABRICKS_CLIENT_SECRET"); secret != "" {
		config.Databricks.ClientSecret = secret
	}
	if timeout := os.Getenv("DATABRICKS_TIMEOUT"); timeout != "" {
		config.Databricks.Timeout = timeout
	}
	if transport := os.Getenv("DATABRICKS_MCP_TRANSPORT"); transport != "" {
		config.Server.Transport = transport
	}
	if host := os.Getenv("DATABRICKS_MCP_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("DATABRICKS_MCP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if level := os.Getenv("DATABRICKS_MCP_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, transport string, port int, logLevel string) {
	if transport != "" {
		config.Server.Transport = transport
	}
	if port > 0 {
		config.Server.Port = port
	}
	if logLevel != "" {
		config.Logging.Level = logLevel
	}
}

// Validate checks mandatory configuration and returns every problem found.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Databricks.BaseURL() == "" {
		result = multierror.Append(result, fmt.Errorf("databricks.host is required (DATABRICKS_HOST)"))
	}
	if c.Databricks.Token == "" && !c.Databricks.UsesOAuth() {
		result = multierror.Append(result, fmt.Errorf("databricks.token (DATABRICKS_TOKEN) or databricks.client_id + databricks.client_secret is required"))
	}
	if (c.Databricks.ClientID == "") != (c.Databricks.ClientSecret == "") {
		result = multierror.Append(result, fmt.Errorf("databricks.client_id and databricks.client_secret must be set together"))
	}
	if c.Databricks.Timeout != "" {
		if _, err := time.ParseDuration(c.Databricks.Timeout); err != nil {
			result = multierror.Append(result, fmt.Errorf("databricks.timeout %q is not a valid duration", c.Databricks.Timeout))
		}
	}

	switch c.Logging.Format {
	case "", LogFormatText, LogFormatJSON:
	default:
		result = multierror.Append(result, fmt.Errorf("logging.format %q must be one of text, json", c.Logging.Format))
	}

	switch c.Server.Transport {
	case TransportStdio, TransportSSE, TransportHTTP:
	default:
		result = multierror.Append(result, fmt.Errorf("server.transport %q must be one of stdio, sse, http", c.Server.Transport))
	}
	if c.Server.Transport != TransportStdio && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		result = multierror.Append(result, fmt.Errorf("server.port %d is out of range", c.Server.Port))
	}

	return result.ErrorOrNil()
}
