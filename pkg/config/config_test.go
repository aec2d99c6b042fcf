package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]string) *viper.Viper {
	v := viper.New()
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]string{"JWT_SECRET": "s3cret"}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 7*24*60, cfg.JWT.Expiration, "la sesión dura 7 días por defecto")
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Cookie.Secure, "en development la cookie no es Secure")
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "postgres://postgres:@localhost:5432/peptide_store?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_ProduccionCookieSecure(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]string{"JWT_SECRET": "x", "APP_ENV": "production"}))
	require.NoError(t, err)
	assert.True(t, cfg.Cookie.Secure)
}

func TestFromViper_SinSecretFalla(t *testing.T) {
	_, err := fromViper(newViper(nil))
	assert.Error(t, err)
}

func TestFromViper_BcryptCostFueraDeRango(t *testing.T) {
	_, err := fromViper(newViper(map[string]string{"JWT_SECRET": "x", "AUTH_BCRYPT_COST": "40"}))
	assert.Error(t, err)
}

func TestFromViper_DatabaseURLTienePrioridad(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]string{
		"JWT_SECRET":   "x",
		"DATABASE_URL": "postgres://u:p@db:5432/store",
		"DB_HOST":      "ignored",
	}))
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/store", cfg.DB.ConnectionString())
}

func TestDBFromViper_NoRequiereSecret(t *testing.T) {
	db := dbFromViper(newViper(map[string]string{"DB_NAME": "tienda", "DB_PORT": "6543"}))
	assert.Equal(t, "tienda", db.DBName)
	assert.Equal(t, 6543, db.Port)
	assert.Equal(t, "postgres://postgres:@localhost:6543/tienda?sslmode=disable", db.ConnectionString())
}
