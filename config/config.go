package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds application configuration loaded from environment variables.
// Only DATABASE_URL, JWT_SECRET and GCS_BUCKET are mandatory; everything else has a
// development-friendly default.
type Config struct {
	AppName    string `env:"APP_NAME" env-default:"event-registration"`
	Env        string `env:"APP_ENV" env-default:"development" validate:"oneof=development staging production test"`
	Port       int    `env:"PORT" env-default:"3001" validate:"gt=0,lte=65535"`
	GinMode    string `env:"GIN_MODE" env-default:"release" validate:"oneof=debug release test"`
	APIBaseURL string `env:"API_BASE_URL" env-default:"http://localhost:3001" validate:"required,url"`

	// Database
	DatabaseURL   string        `env:"DATABASE_URL" env-required:"true" validate:"required,url"`
	DBMaxConns    int32         `env:"DB_MAX_CONNS" env-default:"10" validate:"gt=0"`
	DBMinConns    int32         `env:"DB_MIN_CONNS" env-default:"2" validate:"gte=0"`
	DBMaxConnLife time.Duration `env:"DB_MAX_CONN_LIFETIME" env-default:"1h"`
	MigrationsDir string        `env:"MIGRATIONS_DIR" env-default:"db/migrations"`

	// JWT
	JWTSecret string        `env:"JWT_SECRET" env-required:"true" validate:"required"`
	JWTTTL    time.Duration `env:"JWT_TTL" env-default:"24h" validate:"gt=0"`

	// Google Cloud Storage holds event images; the bucket plays the role of the blob container.
	GCSBucket              string `env:"GCS_BUCKET" env-required:"true" validate:"required"`
	GCSCredentialsJSONPath string `env:"GCS_CREDENTIALS_JSON"` // optional; if empty, Application Default Credentials are used

	// Redis backs the rate limiter when set; otherwise an in-process counter is used.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`

	// Fixed-window rate limit applied to every route
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" env-default:"10" validate:"gte=0"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"1s"`

	// Only honor CF-Connecting-IP / X-Forwarded-For when running behind a trusted proxy.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" env-default:"false"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:","`

	// RabbitMQ
	RabbitMQURL        string `env:"RABBITMQ_URL"`
	RabbitMQEmailQueue string `env:"RABBITMQ_EMAIL_QUEUE" env-default:"emails"`

	// Mailgun
	MailgunDomain string `env:"MAILGUN_DOMAIN"`
	MailgunAPIKey string `env:"MAILGUN_API_KEY"`
	MailgunSender string `env:"MAILGUN_SENDER"`

	// Email sending toggle
	MailSendEnabled bool `env:"MAIL_SEND_ENABLED" env-default:"false"`

	// Elasticsearch
	ElasticsearchAddrs []string `env:"ELASTICSEARCH_ADDRS" env-separator:","`
	ElasticsearchUser  string   `env:"ELASTICSEARCH_USERNAME"`
	ElasticsearchPass  string   `env:"ELASTICSEARCH_PASSWORD"`
	ESEventsIndex      string   `env:"ES_EVENTS_INDEX" env-default:"events"`

	// HTTP access log toggle
	HTTPLogEnabled bool `env:"HTTP_LOG_ENABLED" env-default:"true"`

	// Prometheus /metrics
	MetricsEnabled bool `env:"METRICS_ENABLED" env-default:"true"`
}

// Load reads configuration from the environment and validates it.
// The error lists every problem so the operator can fix them in one go.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	cfg.CORSAllowedOrigins = trimAll(cfg.CORSAllowedOrigins)
	cfg.ElasticsearchAddrs = trimAll(cfg.ElasticsearchAddrs)

	if err := validator.New().Struct(&cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
			}
			return nil, fmt.Errorf("invalid configuration: %s", strings.Join(msgs, ", "))
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		return nil, fmt.Errorf("invalid configuration: DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", cfg.DBMinConns, cfg.DBMaxConns)
	}
	return &cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// IsDevelopment reports whether the app runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// EventURL builds the public link to an event, used in notification emails.
func (c *Config) EventURL(eventID string) string {
	return strings.TrimRight(c.APIBaseURL, "/") + "/events/" + eventID
}

func trimAll(in []string) []string {
	res := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
