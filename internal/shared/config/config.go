package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config: полная конфигурация сервиса
type Config struct {
	Database DBConfig       `toml:"database"`
	RabbitMQ MQConfig       `toml:"rabbitmq"`
	HTTP     HTTPConfig     `toml:"http"`
	JWT      JWTConfig      `toml:"jwt"`
	Store    StoreConfig    `toml:"store"`
	Telegram TelegramConfig `toml:"telegram"`
	App      AppConfig      `toml:"app"`
	Log      LogConfig      `toml:"log"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	SSLMode  string `toml:"sslmode"`
}

type MQConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	VHost    string `toml:"vhost"`
	Exchange string `toml:"exchange"`
}

type HTTPConfig struct {
	Port int `toml:"port"`
}

type JWTConfig struct {
	Secret        string `toml:"secret"`
	ExpiryMinutes int    `toml:"expiry_minutes"`
}

// StoreConfig: где хранится локальное состояние устройств
type StoreConfig struct {
	Backend  string `toml:"backend"` // memory | badger | postgres
	Dir      string `toml:"dir"`     // каталог badger
	InMemory bool   `toml:"in_memory"`
}

type TelegramConfig struct {
	Enabled bool   `toml:"enabled"`
	Token   string `toml:"token"`
}

// AppConfig: тайминги и параметры экранного потока
type AppConfig struct {
	Language          string   `toml:"language"`
	LoadingDelay      Duration `toml:"loading_delay"`
	AuthDelay         Duration `toml:"auth_delay"`
	BookingDelay      Duration `toml:"booking_delay"`
	ProgressInterval  Duration `toml:"progress_interval"`
	NotificationTTL   Duration `toml:"notification_ttl"`
	ProgressSteps     int      `toml:"progress_steps"`
	ProgressStartStep int      `toml:"progress_start_step"`
	OnboardingSlides  int      `toml:"onboarding_slides"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
	Pretty bool   `toml:"pretty"`
}

// Duration: time.Duration, который читается из TOML строкой ("1500ms", "3s")
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default: значения по умолчанию (совпадают с поведением мобильного клиента)
func Default() Config {
	return Config{
		Database: DBConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "letsgo_user",
			Password: "letsgo_pass",
			Database: "letsgo_db",
			SSLMode:  "disable",
		},
		RabbitMQ: MQConfig{
			Host:     "localhost",
			Port:     5672,
			User:     "guest",
			Password: "guest",
			VHost:    "/",
			Exchange: "letsgo_topic",
		},
		HTTP: HTTPConfig{Port: 3000},
		JWT:  JWTConfig{Secret: "dev_secret", ExpiryMinutes: 60 * 24},
		Store: StoreConfig{
			Backend: "badger",
			Dir:     "./data/badger",
		},
		App: AppConfig{
			Language:          "en",
			LoadingDelay:      Duration{2 * time.Second},
			AuthDelay:         Duration{1500 * time.Millisecond},
			BookingDelay:      Duration{2 * time.Second},
			ProgressInterval:  Duration{3 * time.Second},
			NotificationTTL:   Duration{3 * time.Second},
			ProgressSteps:     4,
			ProgressStartStep: 2,
			OnboardingSlides:  3,
		},
		Log: LogConfig{Level: "INFO"},
	}
}

// Load: CONFIG_FILE (по умолчанию ./config/letsgo.toml) + ENV перекрывает.
// Если файла нет или он битый, работаем на значениях по умолчанию.
func Load() Config {
	cfg, err := LoadFrom(getEnv("CONFIG_FILE", "./config/letsgo.toml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v, using defaults\n", err)
		cfg = Default()
		applyEnv(&cfg)
	}
	return cfg
}

// LoadFrom читает конкретный файл. Отсутствующий файл не считается ошибкой.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет значения, без которых сервис не стартует
func (c Config) Validate() error {
	switch c.Store.Backend {
	case "memory", "badger", "postgres":
	default:
		return fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend)
	}
	if c.App.ProgressSteps < 1 || c.App.ProgressStartStep < 0 || c.App.ProgressStartStep > c.App.ProgressSteps {
		return fmt.Errorf("app: progress_start_step %d out of range for %d steps", c.App.ProgressStartStep, c.App.ProgressSteps)
	}
	if c.App.OnboardingSlides < 1 {
		return fmt.Errorf("app.onboarding_slides must be positive")
	}
	if c.Telegram.Enabled && c.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required when telegram is enabled")
	}
	return nil
}

func applyEnv(c *Config) {
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnvInt("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Database = getEnv("DB_NAME", c.Database.Database)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)

	c.RabbitMQ.Enabled = getEnvBool("RABBITMQ_ENABLED", c.RabbitMQ.Enabled)
	c.RabbitMQ.Host = getEnv("RABBITMQ_HOST", c.RabbitMQ.Host)
	c.RabbitMQ.Port = getEnvInt("RABBITMQ_PORT", c.RabbitMQ.Port)
	c.RabbitMQ.User = getEnv("RABBITMQ_USER", c.RabbitMQ.User)
	c.RabbitMQ.Password = getEnv("RABBITMQ_PASSWORD", c.RabbitMQ.Password)
	c.RabbitMQ.VHost = getEnv("RABBITMQ_VHOST", c.RabbitMQ.VHost)
	c.RabbitMQ.Exchange = getEnv("RABBITMQ_EXCHANGE", c.RabbitMQ.Exchange)

	c.HTTP.Port = getEnvInt("HTTP_PORT", c.HTTP.Port)

	c.JWT.Secret = getEnv("JWT_SECRET", c.JWT.Secret)
	c.JWT.ExpiryMinutes = getEnvInt("JWT_EXPIRY_MINUTES", c.JWT.ExpiryMinutes)

	c.Store.Backend = strings.ToLower(getEnv("STORE_BACKEND", c.Store.Backend))
	c.Store.Dir = getEnv("STORE_DIR", c.Store.Dir)
	c.Store.InMemory = getEnvBool("STORE_IN_MEMORY", c.Store.InMemory)

	c.Telegram.Enabled = getEnvBool("TELEGRAM_ENABLED", c.Telegram.Enabled)
	c.Telegram.Token = getEnv("TELEGRAM_TOKEN", c.Telegram.Token)

	c.App.Language = getEnv("APP_LANGUAGE", c.App.Language)
	c.App.LoadingDelay.Duration = getEnvDuration("APP_LOADING_DELAY", c.App.LoadingDelay.Duration)
	c.App.AuthDelay.Duration = getEnvDuration("APP_AUTH_DELAY", c.App.AuthDelay.Duration)
	c.App.BookingDelay.Duration = getEnvDuration("APP_BOOKING_DELAY", c.App.BookingDelay.Duration)
	c.App.ProgressInterval.Duration = getEnvDuration("APP_PROGRESS_INTERVAL", c.App.ProgressInterval.Duration)
	c.App.NotificationTTL.Duration = getEnvDuration("APP_NOTIFICATION_TTL", c.App.NotificationTTL.Duration)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Dir = getEnv("LOG_DIR", c.Log.Dir)
	c.Log.Pretty = getEnvBool("LOG_PRETTY", c.Log.Pretty)
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// DSN возвращает строку подключения к БД
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// AMQPURL возвращает URL подключения к RabbitMQ
func (c MQConfig) AMQPURL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%d%s",
		c.User, c.Password, c.Host, c.Port, c.VHost,
	)
}
