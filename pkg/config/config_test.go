package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "edumetric", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Mode)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, 80.0, cfg.Engine.Thresholds.PerfHigh)
	assert.Equal(t, 60.0, cfg.Engine.Thresholds.RiskAttHigh)
	assert.Equal(t, 10, cfg.Parser.DefaultLimit)
	assert.Equal(t, 50, cfg.Parser.MaxLimit)
	assert.Equal(t, 500, cfg.Parser.MaxQueryLength)
	assert.False(t, cfg.Engine.Models.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	os.Setenv("EDUMETRIC_API_PORT", "9090")
	defer os.Unsetenv("EDUMETRIC_API_PORT")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.API.Port)
}

func TestValidateDefaultsPass(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.App.Mode = "staging"
	cfg.Database.Port = 0
	cfg.Parser.DefaultLimit = 0
	cfg.Engine.Models.Enabled = true

	verr := cfg.Validate()
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "app.mode")
	assert.Contains(t, verr.Error(), "database.port")
	assert.Contains(t, verr.Error(), "parser.default_limit")
	assert.Contains(t, verr.Error(), "engine.models.dir")
}

func TestValidateProductionSecret(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.App.Mode = "production"
	verr := cfg.Validate()
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "jwt_secret")
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "edumetric"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=edumetric sslmode=disable", d.DSN())
}
