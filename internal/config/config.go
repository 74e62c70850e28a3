package config

// Config holds runtime configuration for the CLI.
type Config struct {
	// DataDir is the shared application-data directory holding the cached list.
	DataDir   string `env:"BGLIST_DATA_DIR"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	Metrics   MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	var cfg Config
	if err := parseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	return cfg, nil
}
