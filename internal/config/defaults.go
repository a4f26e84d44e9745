package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:      "databricks-mcp",
			Transport: TransportStdio,
			Host:      "0.0.0.0",
			Port:      8000,
		},
		Databricks: DatabricksConfig{
			Timeout: "300s",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     LogFormatText,
			Outputs:    []string{"file"},
			FilePath:   "logs/databricks-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}
