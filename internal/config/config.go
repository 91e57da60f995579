// Package config loads the process-wide configuration once at startup.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DevSigningKey is used when no signing key is configured. Never deploy with it.
const DevSigningKey = "your-secret-key-change-in-production"

const (
	defaultPort       = "3000"
	defaultDBPath     = "app.db"
	defaultLogLevel   = "info"
	defaultTokenTTL   = "7d"
	defaultBcryptCost = 10
	defaultHasher     = "bcrypt"
)

// Config is an immutable snapshot of the runtime configuration.
type Config struct {
	Port     string
	DBPath   string
	LogLevel string
	Auth     AuthConfig
}

type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
	BcryptCost int
	// Hasher selects the scheme for new hashes: "bcrypt" or "argon2id".
	Hasher string
}

// InsecureSigningKey reports whether the development fallback key is in use.
func (c Config) InsecureSigningKey() bool {
	return c.Auth.SigningKey == DevSigningKey
}

// Load reads configs/config.yml (if present) and environment overrides.
// Extra search paths may be passed; they are tried before "configs".
func Load(paths ...string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath("configs")

	v.SetDefault("port", defaultPort)
	v.SetDefault("db.path", defaultDBPath)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("auth.signing_key", DevSigningKey)
	v.SetDefault("auth.token_ttl", defaultTokenTTL)
	v.SetDefault("auth.bcrypt_cost", defaultBcryptCost)
	v.SetDefault("auth.hasher", defaultHasher)

	for key, env := range map[string]string{
		"port":             "PORT",
		"db.path":          "DB_PATH",
		"log.level":        "LOG_LEVEL",
		"auth.signing_key": "JWT_SECRET",
		"auth.token_ttl":   "JWT_EXPIRES_IN",
		"auth.bcrypt_cost": "BCRYPT_COST",
		"auth.hasher":      "PASSWORD_HASHER",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	ttl, err := ParseTTL(v.GetString("auth.token_ttl"))
	if err != nil {
		return Config{}, err
	}

	hasher := strings.ToLower(strings.TrimSpace(v.GetString("auth.hasher")))
	if hasher != "bcrypt" && hasher != "argon2id" {
		return Config{}, fmt.Errorf("unsupported password hasher %q", hasher)
	}

	key := v.GetString("auth.signing_key")
	if key == "" {
		key = DevSigningKey
	}

	return Config{
		Port:     v.GetString("port"),
		DBPath:   v.GetString("db.path"),
		LogLevel: v.GetString("log.level"),
		Auth: AuthConfig{
			SigningKey: key,
			TokenTTL:   ttl,
			BcryptCost: v.GetInt("auth.bcrypt_cost"),
			Hasher:     hasher,
		},
	}, nil
}

// ParseTTL accepts Go durations ("168h") and whole days ("7d").
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid token ttl %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid token ttl %q", s)
	}
	return d, nil
}
