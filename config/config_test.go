package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Port != "3000" {
		t.Errorf("Server.Port = %q, expected 3000", cfg.Server.Port)
	}
	if cfg.JWT.Expiration != 24*time.Hour {
		t.Errorf("JWT.Expiration = %v, expected 24h", cfg.JWT.Expiration)
	}
	if cfg.Redis.SubscriptionTTL != 5*time.Minute {
		t.Errorf("Redis.SubscriptionTTL = %v, expected 5m", cfg.Redis.SubscriptionTTL)
	}
	if cfg.Password.MinLength != 8 {
		t.Errorf("Password.MinLength = %d, expected 8", cfg.Password.MinLength)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION", "2h")
	t.Setenv("PORT", "8080")
	t.Setenv("POLICY_FILE", "policies.yaml")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("SERVICE_NAME", "eventizer-marketplace-api")
	t.Setenv("DB_NAME", "events")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"jwt secret", cfg.JWT.Secret, "s3cret"},
		{"jwt expiration", cfg.JWT.Expiration, 2 * time.Hour},
		{"port", cfg.Server.Port, "8080"},
		{"policy file", cfg.PolicyFile, "policies.yaml"},
		{"redis addr", cfg.Redis.Addr, "127.0.0.1:6379"},
		{"service name truncated", cfg.ServiceName, "eventizer-marketplac"},
		{"db name", cfg.Database.Name, "events"},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s = %v, expected %v", tt.name, tt.got, tt.expected)
		}
	}
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION", "forever")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for invalid JWT_EXPIRATION")
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	expected := "host=db user=u password=p dbname=n port=5432 sslmode=disable"
	if got := d.DSN(); got != expected {
		t.Errorf("DSN() = %q, expected %q", got, expected)
	}
}
