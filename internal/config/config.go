package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Переменные окружения с секретами, перекрывающие значения из файла
const (
	EnvDBPassword             = "DB_PASSWORD"
	EnvJWTSecret              = "JWT_SECRET"
	EnvBootstrapAdminPassword = "BOOTSTRAP_ADMIN_PASSWORD"
	EnvNotifierToken          = "NOTIFIER_TOKEN"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Auth      AuthConfig      `toml:"auth"`
	OTP       OTPConfig       `toml:"otp"`
	Notifier  NotifierConfig  `toml:"notifier"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Bootstrap BootstrapConfig `toml:"bootstrap"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig подключение к PostgreSQL
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
	MigrateOnStart  bool   `toml:"migrate_on_start"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig токены сотрудников и родителей
type AuthConfig struct {
	JWTSecret        string `toml:"jwt_secret"`
	AdminTokenTTL    int    `toml:"admin_token_ttl"`    // минуты
	ParentSessionTTL int    `toml:"parent_session_ttl"` // минуты
	BcryptCost       int    `toml:"bcrypt_cost"`
}

// OTPConfig одноразовые коды
type OTPConfig struct {
	TTL            int `toml:"ttl"`             // минуты
	MaxAttempts    int `toml:"max_attempts"`
	ResendCooldown int `toml:"resend_cooldown"` // секунды
}

// NotifierConfig шлюз SMS/e-mail; пустой URL включает вывод в лог
type NotifierConfig struct {
	URL            string `toml:"url"`
	Token          string `toml:"token"`
	PrincipalEmail string `toml:"principal_email"`
	Timeout        int    `toml:"timeout"` // секунды
}

// SchedulerConfig фоновые задачи, периоды в секундах
type SchedulerConfig struct {
	Enabled          bool `toml:"enabled"`
	OTPPurgeInterval int  `toml:"otp_purge_interval"`
	ReminderInterval int  `toml:"reminder_interval"`
}

// BootstrapConfig первый администратор; создается только при пустой таблице сотрудников
type BootstrapConfig struct {
	AdminEmail    string `toml:"admin_email"`
	AdminPassword string `toml:"admin_password"`
	AdminName     string `toml:"admin_name"`
}

// Load читает .env (если есть), затем TOML файл, применяет переменные окружения и значения по умолчанию
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load(".env")

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(EnvJWTSecret); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv(EnvBootstrapAdminPassword); v != "" {
		c.Bootstrap.AdminPassword = v
	}
	if v := os.Getenv(EnvNotifierToken); v != "" {
		c.Notifier.Token = v
	}
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 15)
	setDefault(&c.Server.WriteTimeout, 15)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "admissions_service"
	}

	setDefault(&c.Auth.AdminTokenTTL, 12*60)
	setDefault(&c.Auth.ParentSessionTTL, 20)
	setDefault(&c.Auth.BcryptCost, 10)

	setDefault(&c.OTP.TTL, 15)
	setDefault(&c.OTP.MaxAttempts, 5)
	setDefault(&c.OTP.ResendCooldown, 60)

	setDefault(&c.Notifier.Timeout, 5)

	setDefault(&c.Scheduler.OTPPurgeInterval, 10*60)
	setDefault(&c.Scheduler.ReminderInterval, 60*60)

	if c.Bootstrap.AdminName == "" {
		c.Bootstrap.AdminName = "Administrator"
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string

	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.User == "" {
		problems = append(problems, "database.user is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required (or "+EnvJWTSecret+")")
	}

	positive := map[string]int{
		"server.http_port":        c.Server.HTTPPort,
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"notifier.timeout":        c.Notifier.Timeout,
		"otp.ttl":                 c.OTP.TTL,
		"otp.max_attempts":        c.OTP.MaxAttempts,
	}
	for _, name := range sortedKeys(positive) {
		if positive[name] <= 0 {
			problems = append(problems, name+" must be positive")
		}
	}

	if c.Notifier.URL != "" {
		if u, err := url.Parse(c.Notifier.URL); err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, "notifier.url must be an absolute URL")
		}
	}
	if c.Bootstrap.AdminEmail != "" && c.Bootstrap.AdminPassword == "" {
		problems = append(problems, "bootstrap.admin_password is required when admin_email is set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
