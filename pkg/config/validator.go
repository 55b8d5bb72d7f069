package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	var errs []error

	// App validation
	if c.App.Name == "" {
		errs = append(errs, errors.New("app.name is required"))
	}

	validModes := map[string]bool{"development": true, "production": true, "test": true}
	if !validModes[c.App.Mode] {
		errs = append(errs, fmt.Errorf("app.mode must be one of: development, production, test"))
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.App.LogLevel] {
		errs = append(errs, fmt.Errorf("app.log_level must be one of: debug, info, warn, error"))
	}

	// Database validation
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, errors.New("database.port must be between 1 and 65535"))
	}
	if c.Database.Name == "" {
		errs = append(errs, errors.New("database.name is required"))
	}
	if c.Database.MaxConnections <= 0 {
		errs = append(errs, errors.New("database.max_connections must be positive"))
	}

	// Engine validation
	t := c.Engine.Thresholds
	if t.PerfHigh <= t.PerfMedium {
		errs = append(errs, errors.New("engine.thresholds.perf_high must be greater than perf_medium"))
	}
	if t.PerfHigh <= 0 || t.PerfHigh > 100 {
		errs = append(errs, errors.New("engine.thresholds.perf_high must be between 0 and 100"))
	}
	if t.RiskAttHigh >= t.RiskAttMedium {
		errs = append(errs, errors.New("engine.thresholds.risk_att_high must be less than risk_att_medium"))
	}
	if t.DropAttHigh >= t.DropAttMedium {
		errs = append(errs, errors.New("engine.thresholds.drop_att_high must be less than drop_att_medium"))
	}
	if c.Engine.Models.Enabled && c.Engine.Models.Dir == "" {
		errs = append(errs, errors.New("engine.models.dir is required when models are enabled"))
	}

	// Parser validation
	if c.Parser.DefaultLimit <= 0 {
		errs = append(errs, errors.New("parser.default_limit must be positive"))
	}
	if c.Parser.MaxLimit < c.Parser.DefaultLimit {
		errs = append(errs, errors.New("parser.max_limit must be >= default_limit"))
	}
	if c.Parser.MaxQueryLength <= 0 {
		errs = append(errs, errors.New("parser.max_query_length must be positive"))
	}

	// API validation
	if c.API.Port <= 0 || c.API.Port > 65535 {
		errs = append(errs, errors.New("api.port must be between 1 and 65535"))
	}
	if c.App.Mode == "production" && c.API.JWTSecret == "change-me-in-production" {
		errs = append(errs, errors.New("api.jwt_secret must be changed in production"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
