package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	assert.Equal(t, 20, cfg.API.PerPage)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Empty(t, cfg.Cache.RedisURL, "sin REDIS_URL se usa caché en memoria")
}

func TestFromViper_EnvTienePrioridad(t *testing.T) {
	v := viper.New()
	v.Set("API_BASE_URL", "https://erp.example.com/api/")
	v.Set("HTTP_PORT", "9090")
	v.Set("API_PER_PAGE", "0")
	v.Set("LOOKUP_TTL_SECONDS", 10)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "https://erp.example.com/api", cfg.API.BaseURL, "se recorta la barra final")
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 20, cfg.API.PerPage, "per_page inválido vuelve al valor por defecto")
	assert.Equal(t, 10*time.Second, cfg.Cache.LookupTTL)
}

func TestFromViper_BaseURLVacia(t *testing.T) {
	v := viper.New()
	v.Set("API_BASE_URL", "")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_SesionSinIntervaloValido(t *testing.T) {
	for _, raw := range []string{"0", "-5"} {
		v := viper.New()
		v.Set("SESSION_SWEEP_SECONDS", raw)
		v.Set("SESSION_TTL_MINUTES", raw)

		cfg, err := fromViper(v)
		require.NoError(t, err)
		assert.Equal(t, 60*time.Second, cfg.Session.SweepInterval, raw)
		assert.Equal(t, 30*time.Minute, cfg.Session.TTL, raw)
	}
}
