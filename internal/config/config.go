package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	APIBaseURL     string        // base URL of the remote API (ex: "http://localhost:3001/api")
	RequestTimeout time.Duration // wall-clock bound for every outbound request (default: 15s)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	CredentialsFile string // path of the persisted token pair (default: <user config dir>/plataforma/credentials.json)

	CacheTTL             time.Duration // TTL for cached query results (default: 5m)
	CachePurgeInterval   time.Duration // interval between expired-entry purges in watch mode (default: 10m)
	SessionRefreshLeeway time.Duration // refresh the access token this long before it expires (default: 1m)
	WatchInterval        time.Duration // re-render interval for `dashboard --watch` (default: 30s)

	// Redis (optional). When RedisAddr is empty the query cache is
	// memory-only and forgotten when the process exits.
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDialTimeout    time.Duration // ex: 5s
	RedisReadTimeout    time.Duration // ex: 3s
	RedisWriteTimeout   time.Duration // ex: 3s
	RedisConnectTimeout time.Duration // total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // initial wait between retries (grows exponentially)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // connection pool size
	RedisWarnThreshold  int           // warn after this many attempts
}

func Load() *Config {
	cfg := &Config{
		// Remote API
		APIBaseURL:     getenv("PLATAFORMA_API_URL", "http://localhost:3001/api"),
		RequestTimeout: mustDuration("PLATAFORMA_REQUEST_TIMEOUT", 15*time.Second),

		// Logging
		LogLevel:  getenv("PLATAFORMA_LOG_LEVEL", "info"),
		PrettyLog: mustBool("PLATAFORMA_PRETTY_LOG", true),

		// Session persistence
		CredentialsFile: getenv("PLATAFORMA_CREDENTIALS_FILE", defaultCredentialsFile()),

		// Query cache
		CacheTTL:             mustDuration("PLATAFORMA_CACHE_TTL", 5*time.Minute),
		CachePurgeInterval:   mustDuration("PLATAFORMA_CACHE_PURGE_INTERVAL", 10*time.Minute),
		SessionRefreshLeeway: mustDuration("PLATAFORMA_SESSION_REFRESH_LEEWAY", time.Minute),
		WatchInterval:        mustDuration("PLATAFORMA_WATCH_INTERVAL", 30*time.Second),

		// Redis settings (optional persistent cache backend)
		RedisAddr:           getenv("PLATAFORMA_REDIS_ADDR", ""),
		RedisUser:           getenv("PLATAFORMA_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("PLATAFORMA_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("PLATAFORMA_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("PLATAFORMA_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("PLATAFORMA_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("PLATAFORMA_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisConnectTimeout: mustDuration("PLATAFORMA_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("PLATAFORMA_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("PLATAFORMA_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("PLATAFORMA_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("PLATAFORMA_REDIS_POOL_SIZE", 10),
		RedisWarnThreshold:  getenvInt("PLATAFORMA_REDIS_WARN_THRESHOLD", 3),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// defaultCredentialsFile resolves the per-user credentials path.
// Falls back to the working directory when no user config dir exists
// (e.g. stripped-down containers).
func defaultCredentialsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "plataforma-credentials.json"
	}
	return filepath.Join(dir, "plataforma", "credentials.json")
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
