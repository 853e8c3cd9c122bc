package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

// Драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var (
	// ErrLoadConfig возвращается, если файл конфигурации не удалось прочитать
	ErrLoadConfig = errors.New("config: failed to load")

	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса.
// Источники по возрастанию приоритета: значения по умолчанию, config.toml, .env, переменные окружения
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	BusinessHours BusinessHoursConfig `toml:"business_hours"`
	Booking       BookingConfig       `toml:"booking"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"HTTP_READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" env:"HTTP_WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig настройки хранилища
type DatabaseConfig struct {
	Driver          string `toml:"driver" env:"DB_DRIVER"` // postgres | memory
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"` // секунды
	QueryTimeout    int    `toml:"query_timeout" env:"DB_QUERY_TIMEOUT"`         // секунды, 0 - без таймаута
	MigrateOnStart  bool   `toml:"migrate_on_start" env:"DB_MIGRATE_ON_START"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
	File  string `toml:"file" env:"LOG_FILE"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path" env:"METRICS_PATH"`
	ServiceName string `toml:"service_name" env:"METRICS_SERVICE_NAME"`
}

// BusinessHoursConfig сетка слотов рабочего дня
type BusinessHoursConfig struct {
	SlotMinutes int `toml:"slot_minutes" env:"SLOT_MINUTES"`
	StartHour   int `toml:"start_hour" env:"START_HOUR"`
	EndHour     int `toml:"end_hour" env:"END_HOUR"`
}

// BookingConfig правила бронирования
type BookingConfig struct {
	Timezone         string `toml:"timezone" env:"BOOKING_TIMEZONE"`
	RejectPast       bool   `toml:"reject_past" env:"BOOKING_REJECT_PAST"`
	MinNoticeMinutes int    `toml:"min_notice_minutes" env:"BOOKING_MIN_NOTICE_MINUTES"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "reservations",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			QueryTimeout:    5,
			MigrateOnStart:  true,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "smc-reservationservice",
		},
		BusinessHours: BusinessHoursConfig{
			SlotMinutes: domain.DefaultSlotMinutes,
			StartHour:   domain.DefaultStartHour,
			EndHour:     domain.DefaultEndHour,
		},
		Booking: BookingConfig{
			Timezone:   "UTC",
			RejectPast: true,
		},
	}
}

// Load загружает конфигурацию из TOML файла и применяет переопределения из окружения.
// Пустой path пропускает чтение файла
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrLoadConfig, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres", ErrInvalidConfig)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	if c.Database.QueryTimeout < 0 {
		return fmt.Errorf("%w: database.query_timeout must not be negative", ErrInvalidConfig)
	}

	if _, err := logger.ParseLevel(c.Logs.Level); err != nil {
		return fmt.Errorf("%w: logs.level: %v", ErrInvalidConfig, err)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}

	if err := c.Hours().Validate(); err != nil {
		return fmt.Errorf("%w: business_hours: %v", ErrInvalidConfig, err)
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}

	if c.Booking.MinNoticeMinutes < 0 {
		return fmt.Errorf("%w: booking.min_notice_minutes must not be negative", ErrInvalidConfig)
	}

	return nil
}

// DSN формирует строку подключения lib/pq
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Hours конвертирует секцию business_hours в доменную модель
func (c *Config) Hours() domain.BusinessHours {
	return domain.BusinessHours{
		SlotMinutes: c.BusinessHours.SlotMinutes,
		StartHour:   c.BusinessHours.StartHour,
		EndHour:     c.BusinessHours.EndHour,
	}
}

// Location возвращает таймзону заведения
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Booking.Timezone)
}

// MinNotice возвращает минимальный срок записи
func (c *Config) MinNotice() time.Duration {
	return time.Duration(c.Booking.MinNoticeMinutes) * time.Minute
}

// QueryTimeout возвращает таймаут запросов к хранилищу
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.Database.QueryTimeout) * time.Second
}
