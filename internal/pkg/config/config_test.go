package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestProcessDefaults(t *testing.T) {
	cfg, err := process(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.Mongo.Database != "airhost" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected store defaults: %+v %+v", cfg.Mongo, cfg.Redis)
	}
	if cfg.Storage.Driver != "local" || cfg.Storage.LocalURL != "/storage" {
		t.Fatalf("unexpected storage defaults: %+v", cfg.Storage)
	}
	if cfg.Policy.LenientFallback {
		t.Fatal("fallback must fail closed by default")
	}
	if cfg.JWTSecret == "" {
		t.Fatal("development must get a placeholder secret")
	}
}

func TestProcessOverrides(t *testing.T) {
	cfg, err := process(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":                     "production",
		"JWT_SECRET":              "s3cret",
		"TOKEN_TTL":               "2h",
		"STORAGE_DRIVER":          "s3",
		"S3_BUCKET":               "airhost-images",
		"POLICY_LENIENT_FALLBACK": "true",
		"AUTH_RATE_LIMIT":         "2.5",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.TokenTTL != 2*time.Hour || cfg.JWTSecret != "s3cret" {
		t.Fatalf("unexpected auth config: %+v", cfg)
	}
	if cfg.Storage.Driver != "s3" || cfg.Storage.S3Bucket != "airhost-images" {
		t.Fatalf("unexpected storage config: %+v", cfg.Storage)
	}
	if !cfg.Policy.LenientFallback || cfg.AuthRateLimit != 2.5 {
		t.Fatalf("unexpected policy config: %+v %v", cfg.Policy, cfg.AuthRateLimit)
	}
}

func TestProcessRequiresSecretInProduction(t *testing.T) {
	_, err := process(context.Background(), envconfig.MapLookuper(map[string]string{"ENV": "production"}))
	if err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}
