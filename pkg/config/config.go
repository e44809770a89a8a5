package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App       AppConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Checkout  CheckoutConfig
	Assistant AssistantConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DJASSA_APP_ENV" default:"dev"`
	Port         string `envconfig:"DJASSA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"DJASSA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DJASSA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// RedisConfig points at the remote document store. Connection failure is not
// fatal: the marketplace degrades to its local seed datasets.
type RedisConfig struct {
	URL          string        `envconfig:"DJASSA_REDIS_URL"`
	Address      string        `envconfig:"DJASSA_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"DJASSA_REDIS_PASSWORD"`
	DB           int           `envconfig:"DJASSA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DJASSA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DJASSA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DJASSA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DJASSA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DJASSA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"DJASSA_JWT_SECRET" default:"djassa-demo-secret"`
	Issuer            string `envconfig:"DJASSA_JWT_ISSUER" default:"au-djassa"`
	ExpirationMinutes int    `envconfig:"DJASSA_JWT_EXPIRATION_MINUTES" default:"720"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type CheckoutConfig struct {
	SuccessDismissDelay time.Duration `envconfig:"DJASSA_CHECKOUT_SUCCESS_DISMISS_DELAY" default:"6s"`
}

type AssistantConfig struct {
	APIKey  string `envconfig:"DJASSA_GEMINI_API_KEY"`
	Model   string `envconfig:"DJASSA_GEMINI_MODEL" default:"gemini-2.5-flash"`
	BaseURL string `envconfig:"DJASSA_GEMINI_BASE_URL"`
}
