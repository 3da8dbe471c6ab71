package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server              ServerConfig              `toml:"server"`
	Database            DatabaseConfig            `toml:"database"`
	Logs                LogsConfig                `toml:"logs"`
	Metrics             MetricsConfig             `toml:"metrics"`
	AvailabilityService AvailabilityServiceConfig `toml:"availability_service"`
	Calendar            CalendarConfig            `toml:"calendar"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig подключение к Postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig логирование; пустой File - только stdout
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig Prometheus метрики
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AvailabilityServiceConfig удалённый бэкенд доступности
// Пустой URL - используется локальное хранилище в Postgres
type AvailabilityServiceConfig struct {
	URL        string  `toml:"url"`
	Timeout    int     `toml:"timeout"` // секунды
	RPS        float64 `toml:"rps"`     // 0 - без ограничения
	Burst      int     `toml:"burst"`
	OperatorID int64   `toml:"operator_id"`
}

// Remote true, если бэкенд доступности удалённый
func (a AvailabilityServiceConfig) Remote() bool {
	return a.URL != ""
}

// CalendarConfig параметры календаря операторов
type CalendarConfig struct {
	Timezone            string `toml:"timezone"`
	MaxMonths           int    `toml:"max_months"`
	PrefetchConcurrency int    `toml:"prefetch_concurrency"` // 0 - без ограничения
	ViewTTL             int    `toml:"view_ttl"`             // секунды
	JanitorCron         string `toml:"janitor_cron"`
	DefaultRangeStart   string `toml:"default_range_start"`
	DefaultRangeEnd     string `toml:"default_range_end"`
}

// Location часовой пояс студии
func (c CalendarConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// DefaultRange интервал по умолчанию для дня недели без расписания
func (c CalendarConfig) DefaultRange() (domain.TimeRange, error) {
	return domain.NewTimeRange(c.DefaultRangeStart, c.DefaultRangeEnd)
}

// Load читает конфигурацию из TOML файла, заполняет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "schedule-service"
	}

	if c.AvailabilityService.Timeout == 0 {
		c.AvailabilityService.Timeout = 5
	}
	if c.AvailabilityService.Burst == 0 {
		c.AvailabilityService.Burst = 10
	}

	if c.Calendar.Timezone == "" {
		c.Calendar.Timezone = "UTC"
	}
	if c.Calendar.MaxMonths == 0 {
		c.Calendar.MaxMonths = 3
	}
	if c.Calendar.ViewTTL == 0 {
		c.Calendar.ViewTTL = 1800
	}
	if c.Calendar.JanitorCron == "" {
		c.Calendar.JanitorCron = "*/5 * * * *"
	}
	if c.Calendar.DefaultRangeStart == "" {
		c.Calendar.DefaultRangeStart = "09:00"
	}
	if c.Calendar.DefaultRangeEnd == "" {
		c.Calendar.DefaultRangeEnd = "17:00"
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if !c.AvailabilityService.Remote() && c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required when availability_service.url is empty", ErrInvalidConfig)
	}
	if c.AvailabilityService.RPS < 0 {
		return fmt.Errorf("%w: availability_service.rps must not be negative", ErrInvalidConfig)
	}

	if _, err := c.Calendar.Location(); err != nil {
		return fmt.Errorf("%w: calendar.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Calendar.MaxMonths < 1 || c.Calendar.MaxMonths > domain.MaxViewMonths {
		return fmt.Errorf("%w: calendar.max_months must be in 1..%d", ErrInvalidConfig, domain.MaxViewMonths)
	}
	if c.Calendar.PrefetchConcurrency < 0 {
		return fmt.Errorf("%w: calendar.prefetch_concurrency must not be negative", ErrInvalidConfig)
	}
	if _, err := cron.ParseStandard(c.Calendar.JanitorCron); err != nil {
		return fmt.Errorf("%w: calendar.janitor_cron: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Calendar.DefaultRange(); err != nil {
		return fmt.Errorf("%w: calendar.default_range: %v", ErrInvalidConfig, err)
	}

	return nil
}
