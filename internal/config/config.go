package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	API      APIConfig
	Session  SessionConfig
	DBDSN    string
	Features Features
}

type AppConfig struct {
	Env      string
	Name     string
	LogLevel string
}

func (c AppConfig) Development() bool { return c.Env == "development" }

type HTTPConfig struct {
	Port           string
	MetricsEnabled bool
}

func (c HTTPConfig) Addr() string { return ":" + c.Port }

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	Secret       []byte
	Store        string // cookie or postgres
	MaxAge       time.Duration
	CookieSecure bool
	// Generated is true when no secret was configured and a random one was
	// made up for this process.
	Generated bool
}

type Features struct {
	HidePeerAdmins bool
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "erp-console")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("API_BASE_URL", "http://localhost:5000/api")
	v.SetDefault("API_TIMEOUT_SECONDS", 15)
	v.SetDefault("SESSION_STORE", "cookie")
	v.SetDefault("SESSION_MAX_AGE_HOURS", 24)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("USERS_HIDE_PEER_ADMINS", false)
	v.SetDefault("METRICS_ENABLED", true)
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      strings.ToLower(v.GetString("APP_ENV")),
			Name:     v.GetString("APP_NAME"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		HTTP: HTTPConfig{
			Port:           v.GetString("SERVER_PORT"),
			MetricsEnabled: v.GetBool("METRICS_ENABLED"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
			Timeout: time.Duration(v.GetInt("API_TIMEOUT_SECONDS")) * time.Second,
		},
		Session: SessionConfig{
			Store:        strings.ToLower(v.GetString("SESSION_STORE")),
			MaxAge:       time.Duration(v.GetInt("SESSION_MAX_AGE_HOURS")) * time.Hour,
			CookieSecure: v.GetBool("COOKIE_SECURE"),
		},
		DBDSN: v.GetString("DB_DSN"),
		Features: Features{
			HidePeerAdmins: v.GetBool("USERS_HIDE_PEER_ADMINS"),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, errors.New("API_BASE_URL is not set")
	}
	if cfg.API.Timeout <= 0 {
		return nil, fmt.Errorf("API_TIMEOUT_SECONDS must be positive, got %d", v.GetInt("API_TIMEOUT_SECONDS"))
	}
	if cfg.Session.MaxAge <= 0 {
		return nil, fmt.Errorf("SESSION_MAX_AGE_HOURS must be positive, got %d", v.GetInt("SESSION_MAX_AGE_HOURS"))
	}

	switch cfg.Session.Store {
	case "cookie":
	case "postgres":
		if cfg.DBDSN == "" {
			return nil, errors.New("SESSION_STORE=postgres requires DB_DSN")
		}
	default:
		return nil, fmt.Errorf("SESSION_STORE must be cookie or postgres, got %q", cfg.Session.Store)
	}

	secret := v.GetString("SESSION_SECRET")
	switch {
	case secret != "":
		cfg.Session.Secret = []byte(secret)
	case cfg.App.Development():
		cfg.Session.Secret = []byte(hex.EncodeToString(securecookie.GenerateRandomKey(32)))
		cfg.Session.Generated = true
	default:
		return nil, errors.New("SESSION_SECRET is not set")
	}
	if len(cfg.Session.Secret) < 16 {
		return nil, errors.New("SESSION_SECRET must be at least 16 bytes")
	}

	return cfg, nil
}
