package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Token   TokenConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Backend BackendConfig
}

// TokenConfig holds the symmetric signing key and issuer embedded in session
// tokens. The key has no default on purpose.
type TokenConfig struct {
	Key    string `env:"TOKEN_KEY"`
	Issuer string `env:"TOKEN_ISSUER, default=eshop-admin"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=eshop_admin"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// BackendConfig points at the backend catalog API the admin relays
// product/category calls to.
type BackendConfig struct {
	BaseURL string `env:"BACKEND_API_URL, default=http://localhost:5000"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
