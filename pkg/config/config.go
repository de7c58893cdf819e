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
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	Scan    ScanConfig
	Rate    RateConfig
	Auth    AuthConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
// Driver "memory" arranca sin base de datos (solo desarrollo y pruebas).
type DBConfig struct {
	Driver      string // postgres | memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	Migrate     bool // aplicar migraciones embebidas al arrancar
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	BodyLimitMB int
	CORSOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig disco donde se guardan las hojas de vida.
type StorageConfig struct {
	Disk      string // local | s3
	LocalRoot string
	S3        S3Config
}

// S3Config almacenamiento de objetos compatible con S3 (AWS, MinIO, R2...).
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// ScanConfig antivirus externo. Command vacío = escaneo deshabilitado.
type ScanConfig struct {
	Command string // ej. "clamscan --no-summary"
}

// RateConfig límites por IP y por minuto.
type RateConfig struct {
	AuthPerMinute   int
	ApplyPerMinute  int
	StatusPerMinute int
}

// AuthConfig reglas de credenciales.
type AuthConfig struct {
	PasswordMin int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, RESUME_DISK, etc.
func Load() (*Config, error) {
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

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "jobboard-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Driver:      getString(v, "DB_DRIVER", "postgres"),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "jobboard"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			Migrate:     getBool(v, "DB_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60*24),
			Issuer:     getString(v, "JWT_ISSUER", "jobboard-api"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			BodyLimitMB: getInt(v, "HTTP_BODY_LIMIT_MB", 8),
			CORSOrigins: getString(v, "CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		},
		Storage: StorageConfig{
			Disk:      getString(v, "RESUME_DISK", "local"),
			LocalRoot: getString(v, "RESUME_LOCAL_ROOT", "./storage/app"),
			S3: S3Config{
				Endpoint:  getString(v, "S3_ENDPOINT", "s3.amazonaws.com"),
				Region:    getString(v, "S3_REGION", "us-east-1"),
				Bucket:    getString(v, "S3_BUCKET", ""),
				AccessKey: getString(v, "S3_ACCESS_KEY", ""),
				SecretKey: getString(v, "S3_SECRET_KEY", ""),
				UseSSL:    getBool(v, "S3_USE_SSL", true),
			},
		},
		Scan: ScanConfig{
			Command: getString(v, "VIRUS_SCAN_COMMAND", ""),
		},
		Rate: RateConfig{
			AuthPerMinute:   getInt(v, "RATE_AUTH_PER_MINUTE", 10),
			ApplyPerMinute:  getInt(v, "RATE_APPLY_PER_MINUTE", 20),
			StatusPerMinute: getInt(v, "RATE_STATUS_PER_MINUTE", 30),
		},
		Auth: AuthConfig{
			PasswordMin: getInt(v, "AUTH_PASSWORD_MIN", 6),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	switch cfg.Storage.Disk {
	case "local", "s3":
	default:
		return nil, fmt.Errorf("config: RESUME_DISK inválido %q (local | s3)", cfg.Storage.Disk)
	}
	switch cfg.DB.Driver {
	case "postgres", "memory":
	default:
		return nil, fmt.Errorf("config: DB_DRIVER inválido %q (postgres | memory)", cfg.DB.Driver)
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
