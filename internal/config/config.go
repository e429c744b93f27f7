package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Argon2    Argon2Config
	Lockout   LockoutConfig
	RateLimit RateLimitConfig
	Webhook   WebhookConfig
	Bootstrap BootstrapConfig
	Secure    SecureConfig
	CORS      CORSConfig
	LogLevel  string
}

type ServerConfig struct {
	Port string
}

// DatabaseConfig selects the store. An empty URL runs on the in-memory store.
type DatabaseConfig struct {
	URL      string
	MaxConns int32
}

type RedisConfig struct {
	URL string // empty disables the audit queue
}

type JWTConfig struct {
	PrivateKeyPath string // empty generates an ephemeral key
	Issuer         string
	Audience       string
	AccessExpiry   int64 // seconds
}

type Argon2Config struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	Workers     int // concurrent hashes; 0 means GOMAXPROCS
}

type LockoutConfig struct {
	MaxAttempts     int
	CooldownSeconds int
}

type RateLimitConfig struct {
	PerIP   string // "100-M"; empty disables
	PerUser string
}

type WebhookConfig struct {
	URL    string
	Secret string
}

// BootstrapConfig seeds the first SUPER_ADMIN when both fields are set.
type BootstrapConfig struct {
	AdminUsername string
	AdminPassword string
}

type SecureConfig struct {
	IsDevelopment bool
}

// CORSConfig lists browser origins allowed to call the API. Empty disables CORS.
type CORSConfig struct {
	AllowedOrigins []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_MAX_CONNS", 10)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("JWT_PRIVATE_KEY_PATH", "")
	v.SetDefault("JWT_ISSUER", "taskhub")
	v.SetDefault("JWT_AUDIENCE", "taskhub-api")
	v.SetDefault("JWT_ACCESS_EXPIRY", 900)
	v.SetDefault("ARGON2_MEMORY", 64*1024)
	v.SetDefault("ARGON2_ITERATIONS", 3)
	v.SetDefault("ARGON2_PARALLELISM", 2)
	v.SetDefault("HASH_WORKERS", 0)
	v.SetDefault("LOCKOUT_MAX_ATTEMPTS", 5)
	v.SetDefault("LOCKOUT_COOLDOWN_SECONDS", 900)
	v.SetDefault("RATE_LIMIT_PER_IP", "100-M")
	v.SetDefault("RATE_LIMIT_PER_USER", "")
	v.SetDefault("WEBHOOK_URL", "")
	v.SetDefault("WEBHOOK_SECRET", "")
	v.SetDefault("BOOTSTRAP_ADMIN_USERNAME", "")
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "")
	v.SetDefault("SECURE_DEVELOPMENT", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads the environment, plus CONFIG_FILE when set. Environment variables win over the file.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: v.GetInt32("DATABASE_MAX_CONNS"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		JWT: JWTConfig{
			PrivateKeyPath: v.GetString("JWT_PRIVATE_KEY_PATH"),
			Issuer:         v.GetString("JWT_ISSUER"),
			Audience:       v.GetString("JWT_AUDIENCE"),
			AccessExpiry:   v.GetInt64("JWT_ACCESS_EXPIRY"),
		},
		Argon2: Argon2Config{
			Memory:      v.GetUint32("ARGON2_MEMORY"),
			Iterations:  v.GetUint32("ARGON2_ITERATIONS"),
			Parallelism: uint8(v.GetUint("ARGON2_PARALLELISM")),
			Workers:     v.GetInt("HASH_WORKERS"),
		},
		Lockout: LockoutConfig{
			MaxAttempts:     v.GetInt("LOCKOUT_MAX_ATTEMPTS"),
			CooldownSeconds: v.GetInt("LOCKOUT_COOLDOWN_SECONDS"),
		},
		RateLimit: RateLimitConfig{
			PerIP:   v.GetString("RATE_LIMIT_PER_IP"),
			PerUser: v.GetString("RATE_LIMIT_PER_USER"),
		},
		Webhook: WebhookConfig{
			URL:    v.GetString("WEBHOOK_URL"),
			Secret: v.GetString("WEBHOOK_SECRET"),
		},
		Bootstrap: BootstrapConfig{
			AdminUsername: v.GetString("BOOTSTRAP_ADMIN_USERNAME"),
			AdminPassword: v.GetString("BOOTSTRAP_ADMIN_PASSWORD"),
		},
		Secure: SecureConfig{
			IsDevelopment: v.GetBool("SECURE_DEVELOPMENT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetStringSlice("CORS_ALLOWED_ORIGINS")),
		},
		LogLevel: strings.ToLower(v.GetString("LOG_LEVEL")),
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.JWT.AccessExpiry <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRY must be positive, got %d", c.JWT.AccessExpiry)
	}
	if c.Argon2.Memory == 0 || c.Argon2.Iterations == 0 || c.Argon2.Parallelism == 0 {
		return fmt.Errorf("ARGON2_MEMORY, ARGON2_ITERATIONS and ARGON2_PARALLELISM must be positive")
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("DATABASE_MAX_CONNS must be at least 1, got %d", c.Database.MaxConns)
	}
	if (c.Bootstrap.AdminUsername == "") != (c.Bootstrap.AdminPassword == "") {
		return fmt.Errorf("BOOTSTRAP_ADMIN_USERNAME and BOOTSTRAP_ADMIN_PASSWORD must be set together")
	}
	return nil
}

// splitList accepts a YAML list or a comma-separated environment value.
func splitList(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// UsesMemoryStore reports whether no database is configured.
func (c *Config) UsesMemoryStore() bool {
	return c.Database.URL == ""
}
