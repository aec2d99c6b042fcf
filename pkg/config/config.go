package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	DB     DBConfig
	JWT    JWTConfig
	Auth   AuthConfig
	Cookie CookieConfig
	HTTP   HTTPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// IsDevelopment indica si se ejecuta en modo desarrollo.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración del token de sesión.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos (por defecto 7 días)
	Issuer     string
}

// AuthConfig parámetros de credenciales y protección de endpoints públicos.
type AuthConfig struct {
	BcryptCost     int
	RateLimitRPS   float64
	RateLimitBurst int
}

// CookieConfig atributos de la cookie de sesión.
type CookieConfig struct {
	Secure      bool
	CORSOrigins string // orígenes separados por coma
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	return fromViper(loadViper())
}

// LoadDB lee solo la configuración de base de datos (cmd/migrate, cmd/promote_admin).
// No exige JWT_SECRET.
func LoadDB() DBConfig {
	return dbFromViper(loadViper())
}

func loadViper() *viper.Viper {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func dbFromViper(v *viper.Viper) DBConfig {
	return DBConfig{
		DatabaseURL: getString(v, "DATABASE_URL", ""),
		Host:        getString(v, "DB_HOST", "localhost"),
		Port:        getInt(v, "DB_PORT", 5432),
		User:        getString(v, "DB_USER", "postgres"),
		Password:    getString(v, "DB_PASSWORD", ""),
		DBName:      getString(v, "DB_NAME", "peptide_store"),
		SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
	}
}

func fromViper(v *viper.Viper) (*Config, error) {
	env := getString(v, "APP_ENV", "development")
	cfg := &Config{
		App: AppConfig{
			Env:      env,
			Name:     getString(v, "APP_NAME", "peptide-store"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: dbFromViper(v),
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 7*24*60),
			Issuer:     getString(v, "JWT_ISSUER", "peptide-store"),
		},
		Auth: AuthConfig{
			BcryptCost:     getInt(v, "AUTH_BCRYPT_COST", 12),
			RateLimitRPS:   getFloat(v, "AUTH_RATE_LIMIT_RPS", 1),
			RateLimitBurst: getInt(v, "AUTH_RATE_LIMIT_BURST", 5),
		},
		Cookie: CookieConfig{
			Secure:      getBool(v, "COOKIE_SECURE", env != "development"),
			CORSOrigins: getString(v, "CORS_ORIGINS", ""),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es requerido")
	}
	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31 {
		return nil, fmt.Errorf("config: AUTH_BCRYPT_COST fuera de rango (4-31): %d", cfg.Auth.BcryptCost)
	}
	if cfg.JWT.Expiration <= 0 {
		return nil, fmt.Errorf("config: JWT_EXPIRATION_MINUTES debe ser positivo")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(v.GetString(key), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(v.GetString(key))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
