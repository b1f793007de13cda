package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DevSigningSecret is used when JWT_SECRET is unset. It is public, so any
// token signed with it can be forged; SigningSecret reports it as insecure.
const DevSigningSecret = "your-secret-key-here"

// ErrInsecureSecret is returned by SigningSecret when the fallback is in use.
var ErrInsecureSecret = errors.New("JWT_SECRET is not set, using the insecure development secret")

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth    AuthConfig
	Store   StoreConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Uploads UploadConfig
	S3      S3Config
	Seed    SeedConfig
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=24h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
}

type StoreConfig struct {
	// Driver is "memory" or "mongo".
	Driver string `env:"STORE_DRIVER, default=memory"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=problemhub"`
}

type RedisConfig struct {
	Enabled  bool          `env:"REDIS_ENABLED,   default=false"`
	URL      string        `env:"REDIS_URL"`
	Addr     string        `env:"REDIS_ADDR,      default=localhost:6379"`
	Username string        `env:"REDIS_USERNAME"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,        default=0"`
	StatsTTL time.Duration `env:"STATS_CACHE_TTL, default=60s"`
}

type UploadConfig struct {
	// Driver is "local" or "s3".
	Driver         string `env:"BLOB_DRIVER,      default=local"`
	Dir            string `env:"UPLOAD_DIR,       default=uploads"`
	MaxBytes       int64  `env:"MAX_UPLOAD_BYTES, default=10485760"`
	CleanupWorkers int    `env:"CLEANUP_WORKERS,  default=4"`
}

type S3Config struct {
	Bucket       string `env:"S3_BUCKET, default=problemhub-uploads"`
	Region       string `env:"S3_REGION, default=us-east-1"`
	Endpoint     string `env:"S3_ENDPOINT"`
	AccessKey    string `env:"S3_ACCESS_KEY"`
	SecretKey    string `env:"S3_SECRET_KEY"`
	UsePathStyle bool   `env:"S3_USE_PATH_STYLE, default=false"`
}

type SeedConfig struct {
	AdminEmail    string `env:"ADMIN_EMAIL,    default=admin@leetcode.com"`
	AdminPassword string `env:"ADMIN_PASSWORD, default=admin123"`
	DemoData      bool   `env:"SEED_DEMO_DATA, default=true"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case "memory", "mongo":
	default:
		return fmt.Errorf("STORE_DRIVER must be memory or mongo, got %q", c.Store.Driver)
	}
	switch c.Uploads.Driver {
	case "local", "s3":
	default:
		return fmt.Errorf("BLOB_DRIVER must be local or s3, got %q", c.Uploads.Driver)
	}
	if c.Uploads.MaxBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production") || strings.EqualFold(c.Env, "prod")
}

// SigningSecret returns the token signing secret. When JWT_SECRET is unset
// it returns DevSigningSecret together with ErrInsecureSecret; the caller
// decides whether that is fatal.
func (c *Config) SigningSecret() (string, error) {
	if c.Auth.JWTSecret != "" {
		return c.Auth.JWTSecret, nil
	}
	return DevSigningSecret, ErrInsecureSecret
}
