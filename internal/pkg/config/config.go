package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// AuthRateLimit is the per-IP request rate allowed on /auth routes.
	AuthRateLimit float64 `env:"AUTH_RATE_LIMIT, default=5"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Storage StorageConfig
	Policy  PolicyConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=airhost"`
}

type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type StorageConfig struct {
	Driver    string `env:"STORAGE_DRIVER, default=local"`
	LocalRoot string `env:"STORAGE_LOCAL_ROOT, default=storage"`
	LocalURL  string `env:"STORAGE_URL, default=/storage"`

	S3Bucket   string `env:"S3_BUCKET"`
	S3Region   string `env:"S3_REGION, default=eu-north-1"`
	S3Key      string `env:"S3_KEY"`
	S3Secret   string `env:"S3_SECRET"`
	S3Endpoint string `env:"S3_ENDPOINT"`
	S3URL      string `env:"S3_URL"`
}

type PolicyConfig struct {
	// LenientFallback resolves users without any capability as TJENESTE
	// instead of rejecting them.
	LenientFallback bool `env:"POLICY_LENIENT_FALLBACK, default=false"`
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads an optional .env file and then the environment using go-envconfig.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := process(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func process(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" && !cfg.IsDevelopment() {
		return nil, fmt.Errorf("JWT_SECRET is required outside development")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-me"
	}
	return &cfg, nil
}
