package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file settings
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/edumetric")
	}

	// Environment variable settings
	v.SetEnvPrefix("EDUMETRIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "edumetric")
	v.SetDefault("app.mode", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.shutdown_timeout", "10s")

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "edumetric")
	v.SetDefault("database.user", "admin")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.max_connections", 25)
	v.SetDefault("database.ssl_mode", "disable")

	// Engine defaults
	v.SetDefault("engine.thresholds.perf_high", 80.0)
	v.SetDefault("engine.thresholds.perf_medium", 60.0)
	v.SetDefault("engine.thresholds.risk_att_high", 60.0)
	v.SetDefault("engine.thresholds.risk_perf_high", 40.0)
	v.SetDefault("engine.thresholds.risk_att_medium", 75.0)
	v.SetDefault("engine.thresholds.risk_perf_medium", 60.0)
	v.SetDefault("engine.thresholds.drop_att_high", 50.0)
	v.SetDefault("engine.thresholds.drop_perf_high", 40.0)
	v.SetDefault("engine.thresholds.drop_att_medium", 70.0)
	v.SetDefault("engine.thresholds.drop_perf_medium", 60.0)
	v.SetDefault("engine.models.enabled", false)
	v.SetDefault("engine.circuit_breaker.max_failures", 5)
	v.SetDefault("engine.circuit_breaker.timeout", "30s")
	v.SetDefault("engine.refresh_interval", "5m")

	// Parser defaults
	v.SetDefault("parser.default_limit", 10)
	v.SetDefault("parser.max_limit", 50)
	v.SetDefault("parser.max_query_length", 500)

	// API defaults
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.read_timeout", "15s")
	v.SetDefault("api.write_timeout", "15s")
	v.SetDefault("api.rate_limit", 100)
	v.SetDefault("api.jwt_secret", "change-me-in-production")
	v.SetDefault("api.jwt_duration", "24h")

	// WebSocket defaults
	v.SetDefault("websocket.max_connections", 1000)
	v.SetDefault("websocket.ping_interval", "30s")

	// Events defaults
	v.SetDefault("events.buffer_size", 100)
}
