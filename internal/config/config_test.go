package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/locatrack")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.Addr())
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	require.Equal(t, "migrations", cfg.Database.MigrationsPath)
	require.Equal(t, "locatrack", cfg.Storage.Bucket)
	require.Equal(t, "http://localhost:8080", cfg.Proxy.RelayBaseURL)
	require.Equal(t, 15, cfg.Proxy.TimeoutSeconds)
	require.Equal(t, 200, cfg.Export.MaxTenants)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("EXPORT_MAX_TENANTS", "25")
	t.Setenv("PROXY_RELAY_BASE_URL", "https://app.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 25, cfg.Export.MaxTenants)
	require.Equal(t, "https://app.example", cfg.Proxy.RelayBaseURL)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	_, err := Load()
	require.Error(t, err)
}

func TestValidateReportsMissingRequiredVars(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "DATABASE_URL")
	require.Contains(t, err.Error(), "JWT_SECRET")
}
