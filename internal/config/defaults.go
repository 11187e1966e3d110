package config

const defaultThreshold = 0.5

// Default returns a config with every default applied, for running without a config file.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.RequestTimeoutSeconds == 0 {
		cfg.Server.RequestTimeoutSeconds = 60
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.Service.Name == "" {
		cfg.Service.Name = "fsapt-visualization-api"
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = "1.0.0"
	}
	if cfg.Analysis.DefaultThreshold == nil {
		t := defaultThreshold
		cfg.Analysis.DefaultThreshold = &t
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "fsaptvis"
	}
}
