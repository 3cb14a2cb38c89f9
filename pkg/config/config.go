package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	API     APIConfig
	Session SessionConfig
	Cache   CacheConfig
	JWT     JWTConfig
	Export  ExportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP (gateway de la consola).
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// APIConfig configuración del API REST de negocio (colaborador externo).
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
	PerPage int    // tamaño de página por defecto en listados
	Token   string // solo para herramientas de línea de comandos (cmd/export)
}

// SessionConfig controla la vida de las sesiones de consola (una por token).
type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// CacheConfig configuración de la caché de listas de referencia (selects de formularios).
// Si RedisURL está vacío se usa una caché en memoria.
type CacheConfig struct {
	RedisURL  string
	LookupTTL time.Duration
}

// JWTConfig configuración de JWT.
// Si Secret está vacío el gateway solo inspecciona el token (expiración) sin verificar firma;
// la autenticación real la resuelve el API.
type JWTConfig struct {
	Secret string
	Issuer string
}

// ExportConfig configuración de exportaciones descargadas por cmd/export.
type ExportConfig struct {
	Dir string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, HTTP_PORT, REDIS_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "backoffice-console"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:8000/api"), "/"),
			Timeout: time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 30)) * time.Second,
			PerPage: getInt(v, "API_PER_PAGE", 20),
			Token:   getString(v, "API_TOKEN", ""),
		},
		Session: SessionConfig{
			TTL:           time.Duration(getInt(v, "SESSION_TTL_MINUTES", 30)) * time.Minute,
			SweepInterval: time.Duration(getInt(v, "SESSION_SWEEP_SECONDS", 60)) * time.Second,
		},
		Cache: CacheConfig{
			RedisURL:  getString(v, "REDIS_URL", ""),
			LookupTTL: time.Duration(getInt(v, "LOOKUP_TTL_SECONDS", 300)) * time.Second,
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", ""),
		},
		Export: ExportConfig{
			Dir: getString(v, "EXPORT_DIR", "."),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("config: API_BASE_URL es requerido")
	}
	if cfg.API.PerPage <= 0 {
		cfg.API.PerPage = 20
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	// el barrido usa time.NewTicker: no admite intervalos <= 0
	if cfg.Session.SweepInterval <= 0 {
		cfg.Session.SweepInterval = 60 * time.Second
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = 30 * time.Minute
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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
