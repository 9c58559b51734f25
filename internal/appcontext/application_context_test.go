package appcontext

import (
	"context"
	"testing"
	"time"

	"github.com/ridloal/smartshop-pos/internal/platform/config"
	"github.com/stretchr/testify/assert"
)

func TestSettingsOmitSecrets(t *testing.T) {
	app := &ApplicationContext{Cf: &config.Config{
		DB:                config.DBConfig{Driver: "pgx", DSN: "postgres://user:hunter2@db/smartshop"},
		Server:            config.ServerConfig{Host: "127.0.0.1", Port: "8080"},
		Auth:              config.AuthConfig{JWTSecretKey: "s3cret", TokenTTL: 12 * time.Hour, DefaultAdminPassword: "admin"},
		LogLevel:          "info",
		LowStockThreshold: 5,
		ExportPath:        "sales_report.csv",
	}}

	settings := app.Settings()

	values := map[string]string{}
	for _, s := range settings {
		values[s.Name] = s.Value
		assert.NotContains(t, s.Value, "hunter2")
		assert.NotContains(t, s.Value, "s3cret")
	}
	assert.Equal(t, "pgx", values["Database driver"])
	assert.Equal(t, "127.0.0.1:8080", values["API address"])
	assert.Equal(t, "5", values["Low stock threshold"])
	assert.Equal(t, "12h0m0s", values["Session lifetime"])
}

func TestShutdownWithoutPool(t *testing.T) {
	app := &ApplicationContext{}
	assert.NoError(t, app.Shutdown(context.Background()))
}
