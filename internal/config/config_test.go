package config

import "testing"

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.HTTP.Port == "" {
		t.Fatal("http port must have a default")
	}
	if cfg.RabbitMQ.Exchange != "easyconsult.events" {
		t.Fatalf("unexpected exchange default: %s", cfg.RabbitMQ.Exchange)
	}
	if cfg.RabbitMQ.ConsultTopic != "easyconsult.consult.changed" {
		t.Fatalf("unexpected topic default: %s", cfg.RabbitMQ.ConsultTopic)
	}
	if !cfg.Cache.Enabled || cfg.Cache.Backend != CacheBackendMemory {
		t.Fatalf("unexpected cache defaults: enabled=%v backend=%s", cfg.Cache.Enabled, cfg.Cache.Backend)
	}
}

func TestBasicClientsParsing(t *testing.T) {
	t.Setenv("AUTH_BASIC_CLIENTS", "alpha:one,beta:two,malformed")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if len(cfg.Auth.BasicClients) != 2 {
		t.Fatalf("expected two clients, got %d", len(cfg.Auth.BasicClients))
	}
	if cfg.Auth.BasicClients[0].Username != "alpha" || cfg.Auth.BasicClients[0].Password != "one" {
		t.Fatalf("unexpected first client: %+v", cfg.Auth.BasicClients[0])
	}
	if cfg.Auth.BasicClients[1].Username != "beta" || cfg.Auth.BasicClients[1].Password != "two" {
		t.Fatalf("unexpected second client: %+v", cfg.Auth.BasicClients[1])
	}
}

func TestRedisBackendNeedsAddress(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.Cache.Backend != CacheBackendMemory {
		t.Fatalf("redis backend without an address must fall back to memory, got %s", cfg.Cache.Backend)
	}
}

func TestPostgresDSN(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_USER", "consults")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "consults")
	t.Setenv("POSTGRES_SSLMODE", "require")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	want := "host=db.internal port=5433 user=consults password=secret dbname=consults sslmode=require"
	if got := cfg.PostgresDSN(); got != want {
		t.Fatalf("unexpected dsn:\n got %s\nwant %s", got, want)
	}
}

func TestEnvironmentHelpers(t *testing.T) {
	t.Setenv("APP_ENV", "Production")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.IsLocal() {
		t.Fatal("production must not report local")
	}
	if !cfg.IsNotLocal() {
		t.Fatal("production must report not-local")
	}
}
