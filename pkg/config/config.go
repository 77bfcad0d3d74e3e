package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type (
	Config struct {
		HTTP
		Database
		CORS
		RateLimit
		Global
	}

	HTTP struct {
		Host           string
		Port           int
		Mode           string   // gin mode: debug, release or test
		TrustedProxies []string // empty means no proxy is trusted
	}
	Database struct {
		Driver   string
		DSN      string // when set, used as is
		Host     string
		Port     int
		User     string
		Password string
		Name     string
		SSLMode  string
		Path     string // sqlite file

		MaxRetries      int
		RetryDelay      time.Duration
		MaxOpenConns    int
		MaxIdleConns    int
		ConnMaxLifetime time.Duration
		LogSQL          bool
		Seed            bool
	}
	CORS struct {
		AllowedOrigins []string // empty disables CORS handling
	}
	RateLimit struct {
		RPS   float64 // requests per second per client IP, 0 disables
		Burst int
	}
	Global struct {
		ShutdownTimeout time.Duration
	}
)

// LoadDotEnv loads .env.local and .env into the process environment.
// Missing files are ignored and variables already set are not overridden.
func LoadDotEnv() {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err == nil {
			log.Printf("[INFO] Loaded environment from %s", name)
		}
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 5000)
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("trusted_proxies", "")

	v.SetDefault("db_driver", DriverPostgres)
	v.SetDefault("db_dsn", "")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "program")
	v.SetDefault("db_password", "test")
	v.SetDefault("db_name", "bookstore")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_path", "./bookstore.db")
	v.SetDefault("db_max_retries", 10)
	v.SetDefault("db_retry_delay", "5s")
	v.SetDefault("db_max_open_conns", 25)
	v.SetDefault("db_max_idle_conns", 10)
	v.SetDefault("db_conn_max_lifetime", "5m")
	v.SetDefault("db_log_sql", false)
	v.SetDefault("seed_data", false)

	v.SetDefault("allowed_origins", "")
	v.SetDefault("rate_limit_rps", 0)
	v.SetDefault("rate_limit_burst", 20)
	v.SetDefault("shutdown_timeout", "5s")

	return &Config{
		HTTP: HTTP{
			Host:           v.GetString("HOST"),
			Port:           v.GetInt("PORT"),
			Mode:           v.GetString("GIN_MODE"),
			TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES")),
		},
		Database: Database{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:             v.GetString("DB_DSN"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			Path:            v.GetString("DB_PATH"),
			MaxRetries:      v.GetInt("DB_MAX_RETRIES"),
			RetryDelay:      v.GetDuration("DB_RETRY_DELAY"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			LogSQL:          v.GetBool("DB_LOG_SQL"),
			Seed:            v.GetBool("SEED_DATA"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		},
		RateLimit: RateLimit{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
		Global: Global{
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
	}
}

// Addr returns the listen address for the HTTP server.
func (h HTTP) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// ConnString returns the DSN handed to the driver.
func (d Database) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}
	if d.Driver == DriverSQLite {
		return d.Path
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// Redacted describes the connection target without credentials, for logs.
func (d Database) Redacted() string {
	if d.Driver == DriverSQLite {
		return fmt.Sprintf("sqlite:%s", d.ConnString())
	}
	if d.DSN != "" {
		return redactDSN(d.DSN)
	}
	return fmt.Sprintf("%s@%s:%d/%s", d.User, d.Host, d.Port, d.Name)
}

// redactDSN masks the userinfo of URL style DSNs and the password of
// key=value DSNs.
func redactDSN(dsn string) string {
	const marker = "://"
	if start := strings.Index(dsn, marker); start >= 0 {
		start += len(marker)
		end := strings.Index(dsn[start:], "@")
		if end < 0 {
			return dsn
		}
		return dsn[:start] + "***" + dsn[start+end:]
	}
	fields := strings.Fields(dsn)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=***"
		}
	}
	return strings.Join(fields, " ")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
