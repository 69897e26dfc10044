package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
)

const (
	envPrefix         = "REVANEW_"
	defaultConfigFile = "conf/site.yaml"

	// DefaultMaxUploadBytes caps a single image upload at 10 MiB.
	DefaultMaxUploadBytes int64 = 10 << 20
)

// HTTP holds web server settings.
type HTTP struct {
	ListenAddr    string `koanf:"listen_addr" validate:"required"`
	GinMode       string `koanf:"gin_mode" validate:"oneof=debug release test"`
	SessionSecret string `koanf:"session_secret" validate:"required,min=8"`
	SiteBaseURL   string `koanf:"site_base_url" validate:"omitempty,url"`
	// MetricsAddr serves /metrics on its own listener when set; otherwise
	// /metrics sits behind the admin gate on the main listener.
	MetricsAddr   string `koanf:"metrics_addr" validate:"omitempty,hostname_port"`
}

// Store points at the content database. The anon key grants public reads; the
// service key unlocks admin writes and must never leave the server.
type Store struct {
	URL        string `koanf:"url"`
	AnonKey    string `koanf:"anon_key"`
	ServiceKey string `koanf:"service_key"`
}

// Configured reports whether the store has the minimum to connect.
func (s Store) Configured() bool {
	return strings.TrimSpace(s.URL) != "" && strings.TrimSpace(s.AnonKey) != ""
}

// Uploads controls where admin image uploads land.
type Uploads struct {
	Dir      string `koanf:"dir" validate:"required"`
	URLPath  string `koanf:"url_path" validate:"required,startswith=/"`
	MaxBytes int64  `koanf:"max_bytes" validate:"gt=0"`
}

// Log controls the zap logger.
type Log struct {
	Dir     string `koanf:"dir"`
	Level   string `koanf:"level" validate:"oneof=debug info warn error"`
	Console bool   `koanf:"console"`
}

// Admin holds the optional bootstrap account created at startup.
type Admin struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

// Config is the merged application configuration.
type Config struct {
	HTTP    HTTP    `koanf:"http"`
	Store   Store   `koanf:"store"`
	Uploads Uploads `koanf:"uploads"`
	Log     Log     `koanf:"log"`
	Admin   Admin   `koanf:"admin"`
}

var validate = validator.New()

// ErrSessionSecretRequired is returned by Load in release mode when no session
// secret is configured. Session cookies are signed with it, so a known value
// would let anyone forge an admin session.
var ErrSessionSecretRequired = errors.New("http.session_secret must be set when gin_mode is release")

// Load merges .env, the optional YAML file and REVANEW_ environment variables
// (REVANEW_STORE__URL maps to store.url), then fills defaults and validates.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	path := strings.TrimSpace(os.Getenv("REVANEW_CONFIG"))
	if path == "" {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, envPrefix), "__", "."))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	applyLegacyEnv(&cfg)
	applyDefaults(&cfg)
	if err := ensureSessionSecret(&cfg.HTTP); err != nil {
		return nil, err
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// applyLegacyEnv honours the unprefixed variable names used by earlier deployments.
func applyLegacyEnv(cfg *Config) {
	legacy := []struct {
		name string
		dst  *string
	}{
		{"STORE_URL", &cfg.Store.URL},
		{"STORE_ANON_KEY", &cfg.Store.AnonKey},
		{"STORE_SERVICE_KEY", &cfg.Store.ServiceKey},
		{"SESSION_SECRET", &cfg.HTTP.SessionSecret},
		{"UPLOAD_DIR", &cfg.Uploads.Dir},
		{"UPLOAD_URL_PATH", &cfg.Uploads.URLPath},
		{"SITE_BASE_URL", &cfg.HTTP.SiteBaseURL},
		{"ADMIN_USERNAME", &cfg.Admin.Username},
		{"ADMIN_PASSWORD", &cfg.Admin.Password},
	}
	for _, item := range legacy {
		if strings.TrimSpace(*item.dst) != "" {
			continue
		}
		*item.dst = strings.TrimSpace(os.Getenv(item.name))
	}

	if cfg.HTTP.ListenAddr == "" {
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			cfg.HTTP.ListenAddr = ":" + port
		}
	}
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.ListenAddr) == "" {
		cfg.HTTP.ListenAddr = ":8080"
	}
	if strings.TrimSpace(cfg.HTTP.GinMode) == "" {
		cfg.HTTP.GinMode = "release"
	}
	if strings.TrimSpace(cfg.Uploads.Dir) == "" {
		cfg.Uploads.Dir = filepath.Join("public", "uploads")
	}
	if strings.TrimSpace(cfg.Uploads.URLPath) == "" {
		cfg.Uploads.URLPath = "/uploads"
	}
	cfg.Uploads.URLPath = "/" + strings.Trim(cfg.Uploads.URLPath, "/")
	if cfg.Uploads.MaxBytes <= 0 {
		cfg.Uploads.MaxBytes = DefaultMaxUploadBytes
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "info"
	}
	cfg.HTTP.SiteBaseURL = strings.TrimRight(strings.TrimSpace(cfg.HTTP.SiteBaseURL), "/")
}

// ensureSessionSecret refuses a blank secret in release mode. In debug and test
// mode a random key is generated, so sessions do not survive a restart.
func ensureSessionSecret(h *HTTP) error {
	h.SessionSecret = strings.TrimSpace(h.SessionSecret)
	if h.SessionSecret != "" {
		return nil
	}
	if h.GinMode == "release" {
		return ErrSessionSecretRequired
	}
	key := securecookie.GenerateRandomKey(32)
	if key == nil {
		return errors.New("generate session secret")
	}
	h.SessionSecret = hex.EncodeToString(key)
	return nil
}
