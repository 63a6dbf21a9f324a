// Package env loads .env files and reads typed environment values.
package env

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load reads .env and then .env.<APP_ENV> (default "dev"), the latter overriding the former.
// Missing files are not an error. Variables already set in the process keep priority over .env.
func Load() {
	appEnv := Get("APP_ENV", "dev")

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not load .env", "error", err)
	}

	envFile := ".env." + appEnv
	if err := godotenv.Overload(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not load env file", "file", envFile, "error", err)
	}

	slog.Info("environment loaded", "app_env", appEnv)
}

// Get returns the value of key, or def when it is unset or blank.
func Get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// GetBool parses key with strconv.ParseBool, falling back to def.
func GetBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env value, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

// GetInt parses key as a base-10 integer, falling back to def.
func GetInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid int env value, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

// GetDuration parses key with time.ParseDuration ("10m", "250ms"), falling back to def.
func GetDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration env value, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// GetList splits a comma-separated value, dropping blanks.
func GetList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
