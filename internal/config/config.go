package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is built once at startup and passed to whoever needs it. There is
// no ambient global settings object.
type Config struct {
	Env   string
	Port  int
	DBURL string

	// SecretKey guards the admin debug endpoints.
	SecretKey string

	Locale string

	// Mail
	MailDriver   string // "log" or "smtp"
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	MailAdmin    string
	MailTimeout  time.Duration

	// Observability
	OTLPEndpoint   string
	TracingEnabled bool

	SeedEvents bool
}

// Load reads the environment once. Missing required values are a startup
// error, never a runtime one.
func Load() (Config, error) {
	cfg := Config{
		Env:            getEnv("APP_ENV", "dev"),
		Port:           getEnvInt("PORT", 8080),
		DBURL:          buildDBURL(),
		SecretKey:      os.Getenv("SECRET_KEY"),
		Locale:         getEnv("LOCALE", "pl"),
		MailDriver:     getEnv("MAIL_DRIVER", "log"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
		MailFrom:       os.Getenv("MAIL_FROM"),
		MailAdmin:      os.Getenv("MAIL_ADMIN"),
		MailTimeout:    getEnvDuration("MAIL_TIMEOUT", 10*time.Second),
		OTLPEndpoint:   os.Getenv("OTLP_ENDPOINT"),
		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		SeedEvents:     getEnvBool("SEED_EVENTS", false),
	}

	var missing []string

	if cfg.SecretKey == "" {
		missing = append(missing, "SECRET_KEY")
	}
	if cfg.MailAdmin == "" {
		missing = append(missing, "MAIL_ADMIN")
	}

	switch cfg.MailDriver {
	case "log":
	case "smtp":
		if cfg.SMTPHost == "" {
			missing = append(missing, "SMTP_HOST")
		}
		if cfg.MailFrom == "" {
			missing = append(missing, "MAIL_FROM")
		}
	default:
		return Config{}, fmt.Errorf("config: unknown MAIL_DRIVER %q (want log or smtp)", cfg.MailDriver)
	}

	if len(missing) > 0 {
		return Config{}, errors.New("config: missing required environment: " + strings.Join(missing, ", "))
	}

	return cfg, nil
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "mooncircle")
	pass := getEnv("DB_PASSWORD", "mooncircle")
	name := getEnv("DB_NAME", "mooncircle")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)
		if err != nil {
			return fallback
		}
		return num
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return b
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fallback
		}
		return d
	}
	return fallback
}
