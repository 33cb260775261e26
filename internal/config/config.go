package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StoreDriverFirestore = "firestore"
	StoreDriverPostgres  = "postgres"
)

type Config struct {
	Env   string      `yaml:"env"`
	HTTP  HTTPConfig  `yaml:"http"`
	Log   LogConfig   `yaml:"log"`
	Bot   BotConfig   `yaml:"bot"`
	Store StoreConfig `yaml:"store"`
}

type HTTPConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type BotConfig struct {
	Token       string        `yaml:"token"`
	APIEndpoint string        `yaml:"api_endpoint"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
}

type StoreConfig struct {
	Driver      string            `yaml:"driver"`
	Firestore   FirestoreConfig   `yaml:"firestore"`
	Postgres    PostgresConfig    `yaml:"postgres"`
	Collections CollectionsConfig `yaml:"collections"`
}

// FirestoreConfig.CredentialsJSON is only ever taken from the environment.
type FirestoreConfig struct {
	CredentialsJSON string `yaml:"-"`
	CredentialsFile string `yaml:"credentials_file"`
	ProjectID       string `yaml:"project_id"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type CollectionsConfig struct {
	Events        string `yaml:"events"`
	Notifications string `yaml:"notifications"`
}

func Default() Config {
	return Config{
		Env: "dev",
		HTTP: HTTPConfig{
			Addr:         ":3000",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
		Log: LogConfig{Level: "info"},
		Bot: BotConfig{
			Token:       "",
			APIEndpoint: "https://api.telegram.org/bot%s/%s",
			HTTPTimeout: 15 * time.Second,
		},
		Store: StoreConfig{
			Driver: StoreDriverFirestore,
			Firestore: FirestoreConfig{
				CredentialsFile: "firebase-service-account.json",
			},
			Collections: CollectionsConfig{
				Events:        "events",
				Notifications: "notifications",
			},
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "dev")
}

func (c Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverFirestore:
	case StoreDriverPostgres:
		if strings.TrimSpace(c.Store.Postgres.DSN) == "" {
			return fmt.Errorf("store driver postgres requires postgres.dsn")
		}
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}

	if strings.TrimSpace(c.Store.Collections.Events) == "" || strings.TrimSpace(c.Store.Collections.Notifications) == "" {
		return fmt.Errorf("store collections must not be empty")
	}
	if strings.Count(c.Bot.APIEndpoint, "%s") != 2 {
		return fmt.Errorf("bot api endpoint must contain token and method placeholders")
	}
	return nil
}

func loadFromYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("unmarshal config yaml: %w", err)
	}

	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("parse PORT: invalid port %q", v)
		}
		cfg.HTTP.Addr = ":" + v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if err := overrideDuration("HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout); err != nil {
		return err
	}
	if err := overrideDuration("HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout); err != nil {
		return err
	}
	if err := overrideDuration("HTTP_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout); err != nil {
		return err
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.Bot.Token = strings.TrimSpace(v)
	}
	if v := os.Getenv("BOT_API_ENDPOINT"); v != "" {
		cfg.Bot.APIEndpoint = v
	}
	if err := overrideDuration("BOT_HTTP_TIMEOUT", &cfg.Bot.HTTPTimeout); err != nil {
		return err
	}

	if v := os.Getenv("STORE_DRIVER"); v != "" {
		cfg.Store.Driver = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("FIREBASE_SERVICE_ACCOUNT_KEY"); v != "" {
		cfg.Store.Firestore.CredentialsJSON = v
	}
	if v := os.Getenv("FIREBASE_CREDENTIALS_FILE"); v != "" {
		cfg.Store.Firestore.CredentialsFile = v
	}
	if v := os.Getenv("FIREBASE_PROJECT_ID"); v != "" {
		cfg.Store.Firestore.ProjectID = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Store.Postgres.DSN = v
	}
	if v := os.Getenv("EVENTS_COLLECTION"); v != "" {
		cfg.Store.Collections.Events = v
	}
	if v := os.Getenv("NOTIFICATIONS_COLLECTION"); v != "" {
		cfg.Store.Collections.Notifications = v
	}

	return nil
}

func overrideDuration(key string, target *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parse %s duration: %w", key, err)
	}
	*target = d
	return nil
}
