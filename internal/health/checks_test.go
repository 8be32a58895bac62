package health_test

import (
	"testing"

	"github.com/PeterMetero/metero-store/internal/config"
	"github.com/PeterMetero/metero-store/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHealthHandler(t *testing.T) {
	// Arrange
	cfg := &config.Config{
		Database:     config.Database{Host: "localhost", Port: "5432", User: "store", Password: "secret", Name: "store", SSLMode: "disable"},
		RedisConnect: config.RedisConnect{Host: "localhost", Port: "6379", Username: "default", Password: "secret"},
	}

	// Act
	h, err := health.NewHealthHandler(cfg)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, h.Handler())
}
