// Package config loads and exposes application configuration.
//
// Values come from three layers, later layers winning: compiled-in
// defaults, config/app.json, and a .env file in the working directory.
// Everything is read once at startup and treated as immutable.
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultDatabaseDriver = "mysql"
	defaultMySQLDSN       = "cuahquick:cuahquick@tcp(127.0.0.1:3306)/cuahquick?charset=utf8mb4&parseTime=True&loc=Local"
	defaultPostgresDSN    = "host=localhost user=cuahquick password=cuahquick dbname=cuahquick port=5432 sslmode=disable"
	defaultSQLiteDSN      = "cuahquick.db"
	defaultRedisAddr      = "localhost:6379"
	defaultJWTSecret      = "change-me-in-production"
	defaultAppPort        = "8080"
	defaultAppEnv         = "local"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads config/app.json and .env once. Missing files are not errors.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"DB_DRIVER":       defaultDatabaseDriver,
		"DATABASE_DSN":    "",
		"DB_MAX_CONNS":    "10",
		"DB_SSL":          "disable",
		"REDIS_ADDR":      defaultRedisAddr,
		"REDIS_PASSWORD":  "",
		"JWT_SECRET":      defaultJWTSecret,
		"TOKEN_TTL":       "1h",
		"APP_PORT":        defaultAppPort,
		"APP_ENV":         defaultAppEnv,
		"EMAIL_DOMAIN":    "@ucq.edu.mx",
		"SHOP_WEBHOOK":    "",
		"LOG_MONGO_URI":   "",
		"CORS_ORIGIN":     "*",
		"RATE_LIMIT_RPM":  "200",
		"MENU_CACHE_TTL":  "5m",
		"QUEUE_DRIVER":    "memory",
		"QUEUE_WORKERS":   "4",
		"STORAGE_DISK":    "local",
		"FAILED_JOB_DAYS": "14",
	}
}

// DatabaseDriver returns the configured SQL driver.
// The service historically ran on MySQL and PostgreSQL; sqlite is kept
// for local development and tests.
func DatabaseDriver() string {
	_ = Load()

	driver := strings.ToLower(get("DB_DRIVER", defaultDatabaseDriver))
	switch driver {
	case "mysql", "postgres", "sqlite":
		return driver
	default:
		return defaultDatabaseDriver
	}
}

// DatabaseDSN returns the DSN for the active driver.
// DATABASE_DSN overrides everything; otherwise a per-driver default is
// used with DB_SSL spliced into the PostgreSQL form.
func DatabaseDSN() string {
	_ = Load()

	if override := get("DATABASE_DSN", ""); override != "" {
		return override
	}

	switch DatabaseDriver() {
	case "postgres":
		return strings.Replace(defaultPostgresDSN, "sslmode=disable", "sslmode="+SSLMode(), 1)
	case "sqlite":
		return defaultSQLiteDSN
	default:
		return defaultMySQLDSN
	}
}

// SSLMode returns the PostgreSQL sslmode (disable, require, verify-full...).
func SSLMode() string {
	_ = Load()
	return get("DB_SSL", "disable")
}

// MaxConns is the connection-pool ceiling.
func MaxConns() int {
	_ = Load()
	return getInt("DB_MAX_CONNS", 10)
}

func JWTSecret() string {
	_ = Load()
	return get("JWT_SECRET", defaultJWTSecret)
}

// TokenTTL is the session-token lifetime.
func TokenTTL() time.Duration {
	_ = Load()
	return getDuration("TOKEN_TTL", time.Hour)
}

// EmailDomain is the institutional suffix every registrant must use.
func EmailDomain() string {
	_ = Load()
	return get("EMAIL_DOMAIN", "@ucq.edu.mx")
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

// ShopWebhook is an optional URL notified about order status changes.
func ShopWebhook() string {
	_ = Load()
	return get("SHOP_WEBHOOK", "")
}

// LogMongoURI enables the MongoDB audit log sink when non-empty.
func LogMongoURI() string {
	_ = Load()
	return get("LOG_MONGO_URI", "")
}

func CORSOrigin() string {
	_ = Load()
	return get("CORS_ORIGIN", "*")
}

func RateLimitPerMinute() int {
	_ = Load()
	return getInt("RATE_LIMIT_RPM", 200)
}

func MenuCacheTTL() time.Duration {
	_ = Load()
	return getDuration("MENU_CACHE_TTL", 5*time.Minute)
}

func QueueDriver() string {
	_ = Load()
	return get("QUEUE_DRIVER", "memory")
}

func QueueWorkers() int {
	_ = Load()
	return getInt("QUEUE_WORKERS", 4)
}

// FailedJobRetentionDays bounds how long failed queue jobs are kept.
func FailedJobRetentionDays() int {
	_ = Load()
	return getInt("FAILED_JOB_DAYS", 14)
}

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDefault() string {
	_ = Load()
	return get("STORAGE_DISK", "local")
}

func StorageLocalRoot() string {
	_ = Load()
	return get("STORAGE_LOCAL_ROOT", "storage")
}

func StorageURL() string {
	_ = Load()
	return get("STORAGE_URL", "http://localhost:8080/storage")
}

func StorageS3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string   { _ = Load(); return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { _ = Load(); return get("S3_URL", "") }

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// ── File loading ─────────────────────────────────────────────────────────────

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(get(key, ""))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(get(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
