package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.NotEmpty(t, cfg.LadderURL)
	require.Equal(t, "public/data", cfg.DataDir)
	require.Equal(t, 8000, cfg.APIPort)
	require.False(t, cfg.HasDatabase())
	require.False(t, cfg.IsProduction())

	require.Equal(t, 20*time.Second, cfg.NavigationTimeout)
	require.Equal(t, 10*time.Second, cfg.SelectorTimeout)
	require.Equal(t, 3*time.Second, cfg.SettleDelay)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LADDER_URL", "https://example.test/ladder")
	t.Setenv("DATABASE_URL", "postgres://localhost/club")
	t.Setenv("API_PORT", "9000")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://marsdencc.org.au, https://www.marsdencc.org.au")
	t.Setenv("SCRAPE_NAV_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "https://example.test/ladder", cfg.LadderURL)
	require.True(t, cfg.HasDatabase())
	require.Equal(t, 9000, cfg.APIPort)
	require.True(t, cfg.IsProduction())
	require.Equal(t, []string{"https://marsdencc.org.au", "https://www.marsdencc.org.au"}, cfg.CORSAllowOrigins)
	require.Equal(t, 5*time.Second, cfg.NavigationTimeout)
}

func TestLoad_PortFallsBackToPORT(t *testing.T) {
	t.Setenv("PORT", "3001")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3001, cfg.APIPort)
}
