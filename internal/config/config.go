package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type CacheBackend string

const (
	CacheBackendMemory CacheBackend = "memory"
	CacheBackendRedis  CacheBackend = "redis"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"America/Sao_Paulo"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"easyconsult:easyconsult"`
		BasicClients       []ConfigBasicClient
	}

	Postgres struct {
		Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
		Port     string `env:"POSTGRES_PORT" envDefault:"5432"`
		User     string `env:"POSTGRES_USER" envDefault:"easyconsult"`
		Password string `env:"POSTGRES_PASSWORD"`
		Database string `env:"POSTGRES_DB" envDefault:"easyconsult"`
		SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	}

	Redis struct {
		Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD"`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	RabbitMQ struct {
		Enabled      bool   `env:"RABBITMQ_ENABLED"`
		URL          string `env:"RABBITMQ_URL"`
		Exchange     string `env:"RABBITMQ_EXCHANGE" envDefault:"easyconsult.events"`
		ConsultTopic string `env:"RABBITMQ_CONSULT_TOPIC" envDefault:"easyconsult.consult.changed"`
	}

	Cache struct {
		Enabled    bool         `env:"CACHE_ENABLED" envDefault:"true"`
		Backend    CacheBackend `env:"CACHE_BACKEND" envDefault:"memory"`
		Size       int          `env:"CACHE_SIZE" envDefault:"1000"`
		TTLMinutes int          `env:"CACHE_TTL_MINUTES" envDefault:"60"`
		KeyPrefix  string       `env:"CACHE_KEY_PREFIX" envDefault:"easyconsult"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	if cfg.Auth.BasicClients == nil {
		cfg.Auth.BasicClients = []ConfigBasicClient{}
	}
	clientPairs := strings.Split(cfg.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	// The redis backend only makes sense with an address configured
	if cfg.Cache.Backend == CacheBackendRedis && cfg.Redis.Addr == "" {
		cfg.Cache.Backend = CacheBackendMemory
	}

	return cfg, nil
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.User,
		c.Postgres.Password,
		c.Postgres.Database,
		c.Postgres.SSLMode,
	)
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
