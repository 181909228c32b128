package config

import (
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/nimasrn/donor-hub/pkg/logger"
	"github.com/pkg/errors"
)

var config *Config

// Config holds every value read from the environment. Only the cmd packages
// read it; internal packages receive the pieces they need through their
// constructors.
type Config struct {
	AppEnv   string `env:"APP_ENV,default=dev"`
	AppName  string `env:"APP_NAME,default=donor_hub"`
	AppDebug bool   `env:"APP_DEBUG,default=false"`
	OrgName  string `env:"ORG_NAME,default=Our Foundation"`
	Currency string `env:"CURRENCY,default=INR"`

	HttpListenAddr     string        `env:"HTTP_LISTEN_ADDR,default=:8080"`
	HttpRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT,default=10s"`
	HttpMetricsAddr    string        `env:"HTTP_METRICS_ADDR,default=:9100"`
	HttpMetricsURI     string        `env:"HTTP_METRICS_URI,default=/metrics"`
	AdminApiToken      string        `env:"ADMIN_API_TOKEN"`

	PostgresReadHost     string `env:"POSTGRES_READ_HOST"`
	PostgresReadPort     string `env:"POSTGRES_READ_PORT,default=5432"`
	PostgresReadUser     string `env:"POSTGRES_READ_USER"`
	PostgresReadPassword string `env:"POSTGRES_READ_PASSWORD"`
	PostgresReadDatabase string `env:"POSTGRES_READ_DBNAME"`

	PostgresWriteHost     string `env:"POSTGRES_WRITE_HOST"`
	PostgresWritePort     string `env:"POSTGRES_WRITE_PORT,default=5432"`
	PostgresWriteUser     string `env:"POSTGRES_WRITE_USER"`
	PostgresWritePassword string `env:"POSTGRES_WRITE_PASSWORD"`
	PostgresWriteDatabase string `env:"POSTGRES_WRITE_DBNAME"`

	PostgresSSLMode        string `env:"POSTGRES_SSLMODE,default=disable"`
	PostgresConnectTimeout int    `env:"POSTGRES_CONNECT_TIMEOUT,default=5"`

	RedisAddr               string `env:"REDIS_ADDR,default=localhost:6379"`
	RedisUsername           string `env:"REDIS_USER"`
	RedisPassword           string `env:"REDIS_PASS"`
	RedisDatabase           int    `env:"REDIS_DATABASE,default=0"`
	RedisUniversalKeyPrefix string `env:"REDIS_UNIVERSAL_KEY_PREFIX,default=donorhub:"`

	PromNamespace string `env:"PROM_NAMESPACE,default=donor_hub"`

	PaymentGatewaySecret string        `env:"PAYMENT_GATEWAY_SECRET"`
	PaymentLockTTL       time.Duration `env:"PAYMENT_LOCK_TTL,default=30s"`

	MailFrom                 string        `env:"MAIL_FROM,default=no-reply@example.org"`
	MailAdminAddress         string        `env:"MAIL_ADMIN_ADDRESS"`
	MailSendTimeout          time.Duration `env:"MAIL_SEND_TIMEOUT,default=10s"`
	MailProviderPrimaryUrl   string        `env:"MAIL_PROVIDER_PRIMARY_URL"`
	MailProviderSecondaryUrl string        `env:"MAIL_PROVIDER_SECONDARY_URL"`
	MailProviderApiKey       string        `env:"MAIL_PROVIDER_API_KEY"`

	NotifyAsync   bool `env:"NOTIFY_ASYNC,default=true"`
	NotifyWorkers int  `env:"NOTIFY_WORKERS,default=8"`
	NotifyBuffer  int  `env:"NOTIFY_BUFFER,default=1024"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		if err := godotenv.Load(path); err != nil {
			return errors.Wrapf(err, "failed to load configuration file %s", path)
		}
	}

	if _, err := env.UnmarshalFromEnviron(c); err != nil {
		return errors.Wrap(err, "failed to map env variables to Configuration object")
	}
	config = c
	return nil
}

// Validate rejects configurations the API cannot safely run with. Tools
// that only need the database, like the migrator, skip it.
func (c *Config) Validate() error {
	if c.PaymentGatewaySecret == "" {
		return errors.New("PAYMENT_GATEWAY_SECRET is required")
	}
	if c.MailSendTimeout <= 0 {
		return errors.New("MAIL_SEND_TIMEOUT must be positive")
	}
	if c.NotifyAsync && c.NotifyWorkers <= 0 {
		return errors.New("NOTIFY_WORKERS must be positive when NOTIFY_ASYNC is enabled")
	}
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}
