package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth    AuthConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Audit   AuditConfig
}

type AuthConfig struct {
	// StrictPasswords also verifies the password against the stored hash.
	// The legacy flow matched on email only, so this defaults to off.
	StrictPasswords   bool          `env:"AUTH_STRICT_PASSWORDS,    default=false"`
	LoginDelay        time.Duration `env:"AUTH_LOGIN_DELAY,         default=0s"`
	LoginTimeout      time.Duration `env:"AUTH_LOGIN_TIMEOUT,       default=10s"`
	ErrorDismissAfter time.Duration `env:"AUTH_ERROR_DISMISS_AFTER, default=5s"`
	// MaxAttempts enables the redis-backed failure limiter when > 0.
	MaxAttempts   int           `env:"AUTH_MAX_ATTEMPTS,   default=0"`
	AttemptWindow time.Duration `env:"AUTH_ATTEMPT_WINDOW, default=15m"`
}

type SessionConfig struct {
	// Backend selects the slot store: memory, file, or redis.
	Backend string `env:"SESSION_BACKEND, default=file"`
	File    string `env:"SESSION_FILE,    default=./data/session"`
	Key     string `env:"SESSION_KEY,     default=pb_u"`
}

type MongoConfig struct {
	// URI left empty disables the login audit trail.
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=probooking"`
}

type RedisConfig struct {
	// Addr left empty disables everything redis-backed.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
