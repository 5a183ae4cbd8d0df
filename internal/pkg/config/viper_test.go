package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
modules:
  identity:
    otp:
      ttl_minutes: 10
      delivery_timeout_seconds: 5
    rate_limit: "5-M"
  notification:
    consumer_names: " user_registered , ,password_reset "
jwt:
  secret: "c2VjcmV0"
mail:
  headers: "x-tag:otp, x-env : test"
`

func TestViper_Getters(t *testing.T) {
	t.Parallel()

	// Arrange
	cfg, err := NewViperFromBytes("yaml", []byte(sample), WithDefaults(map[string]any{
		"modules.identity.otp.sweep_interval_minutes": 0,
		"modules.identity.password_hasher":            "bcrypt",
	}))
	require.NoError(t, err)

	// Act & Assert
	assert.Equal(t, 10*time.Minute, cfg.GetMinute("modules.identity.otp.ttl_minutes"))
	assert.Equal(t, 5*time.Second, cfg.GetSecond("modules.identity.otp.delivery_timeout_seconds"))
	assert.Equal(t, "5-M", cfg.GetString("modules.identity.rate_limit"))
	assert.Equal(t, "bcrypt", cfg.GetString("modules.identity.password_hasher"))
	assert.Zero(t, cfg.GetMinute("modules.identity.otp.sweep_interval_minutes"))
	assert.Equal(t, []string{"user_registered", "password_reset"}, cfg.GetArray("modules.notification.consumer_names"))
	assert.Equal(t, []byte("secret"), cfg.GetBinary("jwt.secret"))
	assert.Equal(t, map[string]string{"x-tag": "otp", "x-env": "test"}, cfg.GetMap("mail.headers"))
	assert.Nil(t, cfg.GetArray("missing.key"))
	assert.NoError(t, cfg.Close())
}

func TestViper_EnvOverride(t *testing.T) {
	// Arrange
	t.Setenv("BAZAAR_MODULES_IDENTITY_RATE_LIMIT", "10-H")
	cfg, err := NewViperFromBytes("yaml", []byte(sample), WithEnvPrefix("BAZAAR"))
	require.NoError(t, err)

	// Act
	got := cfg.GetString("modules.identity.rate_limit")

	// Assert
	assert.Equal(t, "10-H", got)
}

func TestNewViperFromBytes_RequiresType(t *testing.T) {
	t.Parallel()

	_, err := NewViperFromBytes(" ", []byte(sample))
	assert.Error(t, err)
}
