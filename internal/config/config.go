package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host            string        `yaml:"host"`
		Port            int           `yaml:"port"`
		Env             string        `yaml:"env"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	App struct {
		ClientURL      string   `yaml:"client_url"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"app"`

	Database struct {
		Driver       string `yaml:"driver"` // postgres, mysql, sqlite
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
		AutoMigrate  bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	Redis struct {
		URL string `yaml:"url"` // пусто - blacklist токенов отключен
	} `yaml:"redis"`

	Email struct {
		Provider       string `yaml:"provider"` // smtp, sendgrid, log
		SMTPHost       string `yaml:"smtp_host"`
		SMTPPort       int    `yaml:"smtp_port"`
		SMTPUsername   string `yaml:"smtp_user"`
		SMTPPassword   string `yaml:"smtp_password"`
		SendGridAPIKey string `yaml:"sendgrid_api_key"`
		FromEmail      string `yaml:"from_email"`
		FromName       string `yaml:"from_name"`
	} `yaml:"email"`

	JWT struct {
		Secret        string        `yaml:"secret"`
		TTL           time.Duration `yaml:"ttl"`
		RememberMeTTL time.Duration `yaml:"remember_me_ttl"`
	} `yaml:"jwt"`

	Google struct {
		ClientID string `yaml:"client_id"`
	} `yaml:"google"`

	Paystack struct {
		SecretKey string        `yaml:"secret_key"`
		BaseURL   string        `yaml:"base_url"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"paystack"`

	Storage struct {
		Type       string `yaml:"type"`        // local, s3, cloudflare_r2
		BasePath   string `yaml:"base_path"`   // для local
		BaseURL    string `yaml:"base_url"`    // публичный префикс URL
		Bucket     string `yaml:"bucket"`      // для S3/R2
		Region     string `yaml:"region"`      // для S3
		AccessKey  string `yaml:"access_key"`  // для S3/R2
		SecretKey  string `yaml:"secret_key"`  // для S3/R2
		Endpoint   string `yaml:"endpoint"`    // для R2 или совместимого S3
		PublicRead bool   `yaml:"public_read"` // ACL public-read на загрузки
	} `yaml:"storage"`

	Upload struct {
		MaxResumeSize int64 `yaml:"max_resume_size"`
		MaxImageSize  int64 `yaml:"max_image_size"`
		ImageQuality  int   `yaml:"image_quality"` // JPEG quality (1-100)
	} `yaml:"upload"`

	Jobs struct {
		RequirePayment bool `yaml:"require_payment"`
	} `yaml:"jobs"`

	RateLimit struct {
		RequestsPerSecond float64 `yaml:"rps"` // 0 - отключено
		Burst             int     `yaml:"burst"`
	} `yaml:"rate_limit"`

	Cache struct {
		ListingTTL time.Duration `yaml:"listing_ttl"` // 0 - отключено
	} `yaml:"cache"`

	Workers struct {
		JobExpirySchedule string `yaml:"job_expiry_schedule"` // пусто - отключено
	} `yaml:"workers"`

	Admin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
}

// Load читает YAML (CONFIG_PATH, по умолчанию config/config.yaml),
// накладывает переменные окружения и значения по умолчанию.
// Отсутствующий файл - не ошибка: в контейнере всё приходит из env.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.Jobs.RequirePayment = true

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	f, err := os.Open(configPath)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", configPath, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to open config file at %s: %w", configPath, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	setString(&c.Server.Env, "SERVER_ENV")
	setString(&c.Database.Driver, "DATABASE_DRIVER")
	setString(&c.Database.DSN, "DATABASE_URL")
	setString(&c.Redis.URL, "REDIS_URL")
	setString(&c.JWT.Secret, "JWT_SECRET")
	setString(&c.Google.ClientID, "GOOGLE_CLIENT_ID")
	setString(&c.Paystack.SecretKey, "PAYSTACK_SECRET_KEY")
	setString(&c.App.ClientURL, "CLIENT_URL")
	setString(&c.Email.Provider, "EMAIL_PROVIDER")
	setString(&c.Email.SMTPHost, "SMTP_HOST")
	setString(&c.Email.SMTPUsername, "SMTP_USER")
	setString(&c.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&c.Email.SendGridAPIKey, "SENDGRID_API_KEY")
	setString(&c.Email.FromEmail, "EMAIL_FROM")
	setString(&c.Storage.Type, "STORAGE_TYPE")
	setString(&c.Storage.Bucket, "STORAGE_BUCKET")
	setString(&c.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&c.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&c.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setString(&c.Admin.Email, "FIRST_ADMIN_EMAIL")
	setString(&c.Admin.Password, "FIRST_ADMIN_PASSWORD")

	if v, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok && v != "" {
		c.App.AllowedOrigins = strings.Split(v, ",")
	}

	if v, ok := os.LookupEnv("SERVER_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}

	if v, ok := os.LookupEnv("SMTP_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SMTP_PORT %q: %w", v, err)
		}
		c.Email.SMTPPort = port
	}

	if v, ok := os.LookupEnv("JOBS_REQUIRE_PAYMENT"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid JOBS_REQUIRE_PAYMENT %q: %w", v, err)
		}
		c.Jobs.RequirePayment = b
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.App.ClientURL == "" {
		c.App.ClientURL = "http://localhost:5173"
	}
	if len(c.App.AllowedOrigins) == 0 {
		c.App.AllowedOrigins = []string{c.App.ClientURL}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Email.Provider == "" {
		c.Email.Provider = "smtp"
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.JWT.TTL == 0 {
		c.JWT.TTL = time.Hour
	}
	if c.JWT.RememberMeTTL == 0 {
		c.JWT.RememberMeTTL = 7 * 24 * time.Hour
	}
	if c.Paystack.BaseURL == "" {
		c.Paystack.BaseURL = "https://api.paystack.co"
	}
	if c.Paystack.Timeout == 0 {
		c.Paystack.Timeout = 15 * time.Second
	}
	if c.Storage.Type == "" {
		c.Storage.Type = "local"
	}
	if c.Storage.Type == "local" && c.Storage.BasePath == "" {
		c.Storage.BasePath = "./uploads"
	}
	if c.Storage.Type == "local" && c.Storage.BaseURL == "" {
		c.Storage.BaseURL = "/uploads"
	}
	if c.Upload.MaxResumeSize == 0 {
		c.Upload.MaxResumeSize = 5 * 1024 * 1024 // 5MB
	}
	if c.Upload.MaxImageSize == 0 {
		c.Upload.MaxImageSize = 5 * 1024 * 1024
	}
	if c.Upload.ImageQuality == 0 {
		c.Upload.ImageQuality = 85
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
}

// Validate проверяет, что обязательные секреты заданы
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("database url is required (DATABASE_URL)")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required (JWT_SECRET)")
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	switch c.Email.Provider {
	case "smtp", "sendgrid", "log":
	default:
		return fmt.Errorf("unsupported email provider: %s", c.Email.Provider)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}
