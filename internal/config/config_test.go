package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "3000", cfg.Web.Port)
	assert.Equal(t, DefaultCity, cfg.App.City)
	assert.Equal(t, 60, cfg.App.CacheTTLMin)
	assert.Equal(t, 30, cfg.App.RatePerMin)
	assert.Equal(t, "*", cfg.App.CORSOrigins)
	assert.NotEmpty(t, cfg.News.Endpoint)
}

func TestValidateOpenAI(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.ValidateOpenAI())

	cfg.OpenAI.APIKey = "sk-test"
	assert.NoError(t, cfg.ValidateOpenAI())
}
