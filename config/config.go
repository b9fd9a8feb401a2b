package config

import (
	"errors"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration. Defaults target a local development
// stack; every optional backend is off when its address is empty.
type Config struct {
	AppName  string
	Env      string // development, staging, production
	Port     string
	GinMode  string
	LogLevel string

	// Database
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	DBMinConns    int32
	DBMaxConnLife time.Duration
	StoreTimeout  time.Duration

	// Migrations and seed
	MigrationsDir string
	SeedOnStart   bool

	// Reference data the register flow assigns to new accounts
	DefaultOrganizationID int64
	DefaultRoleID         int64
	AdminRoleID           int64

	// Redis
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	ReferenceCacheTTL time.Duration

	// JWT
	JWTAccessSecret  string
	JWTRefreshSecret string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration

	// Sessions are always issued; this only decides whether directory routes demand one.
	SessionRequired bool

	// Cookies
	CookieDomain string
	CookieSecure bool

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Rate limiting on login / register
	RateLimitEnabled bool
	TrustProxy       bool

	// Mailgun
	MailgunDomain string
	MailgunAPIKey string
	MailgunSender string

	// RabbitMQ
	RabbitMQURL        string
	RabbitMQEmailQueue string

	// Elasticsearch
	ElasticsearchAddrs string // comma-separated
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESUsersIndex       string

	// Link put into the welcome e-mail
	LoginURL string

	// Email sending toggle
	MailSendEnabled bool

	// Debug metrics (/api/debug/vars)
	DebugMetricsEnabled bool

	// HTTP access log toggle
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// lookup parses key with parse, keeping def when the variable is unset or bad.
func lookup[T any](key string, def T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		log.Printf("config: ignoring %s=%q (%v), using %v", key, raw, err, def)
		return def
	}
	return v
}

func getbool(key string, def bool) bool {
	return lookup(key, def, strconv.ParseBool)
}

func getint(key string, def int) int {
	return lookup(key, def, strconv.Atoi)
}

func getdur(key string, def time.Duration) time.Duration {
	return lookup(key, def, time.ParseDuration)
}

// getid reads a row id; only positive values are accepted.
func getid(key string, def int64) int64 {
	return lookup(key, def, func(s string) (int64, error) {
		id, err := strconv.ParseInt(s, 10, 64)
		if err == nil && id <= 0 {
			err = errors.New("must be positive")
		}
		return id, err
	})
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		AppName:  getenv("APP_NAME", "HRIS"),
		Env:      getenv("APP_ENV", "development"),
		Port:     getenv("PORT", "8080"),
		GinMode:  getenv("GIN_MODE", "release"),
		LogLevel: getenv("LOG_LEVEL", ""),

		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "hris"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(getint("DB_MAX_CONNS", 10)),
		DBMinConns:    int32(getint("DB_MIN_CONNS", 2)),
		DBMaxConnLife: getdur("DB_MAX_CONN_LIFETIME", time.Hour),
		StoreTimeout:  getdur("STORE_TIMEOUT", 5*time.Second),

		MigrationsDir: getenv("MIGRATIONS_DIR", "db/migrations"),
		SeedOnStart:   getbool("SEED_ON_START", false),

		DefaultOrganizationID: getid("DEFAULT_ORGANIZATION_ID", 1),
		DefaultRoleID:         getid("DEFAULT_ROLE_ID", 1),
		AdminRoleID:           getid("ADMIN_ROLE_ID", 2),

		RedisAddr:         getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getenv("REDIS_PASSWORD", ""),
		RedisDB:           getint("REDIS_DB", 0),
		ReferenceCacheTTL: getdur("REFERENCE_CACHE_TTL", 5*time.Minute),

		JWTAccessSecret:  getenv("JWT_ACCESS_SECRET", "devaccesssecret"),
		JWTRefreshSecret: getenv("JWT_REFRESH_SECRET", "devrefreshsecret"),
		AccessTTL:        getdur("JWT_ACCESS_TTL", time.Hour),
		RefreshTTL:       getdur("JWT_REFRESH_TTL", 168*time.Hour),

		SessionRequired: getbool("SESSION_REQUIRED", false),

		CookieDomain: getenv("COOKIE_DOMAIN", "localhost"),
		CookieSecure: getbool("COOKIE_SECURE", false),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		RateLimitEnabled: getbool("RATE_LIMIT_ENABLED", true),
		TrustProxy:       getbool("TRUST_PROXY", false),

		MailgunDomain: getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey: getenv("MAILGUN_API_KEY", ""),
		MailgunSender: getenv("MAILGUN_SENDER", ""),

		RabbitMQURL:        getenv("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: getenv("RABBITMQ_EMAIL_QUEUE", "emails"),

		ElasticsearchAddrs: getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  getenv("ELASTICSEARCH_PASSWORD", ""),
		ESUsersIndex:       getenv("ES_USERS_INDEX", "hris-users"),

		LoginURL: getenv("LOGIN_URL", "http://localhost:8080/login"),

		MailSendEnabled: getbool("MAIL_SEND_ENABLED", true),

		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", false),

		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", true),
	}
}

// PostgresDSN builds the pgx connection URL, escaping the credentials.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	return u.String()
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

// ESAddrs returns Elasticsearch addresses as a slice. Empty disables the search index.
func (c *Config) ESAddrs() []string {
	return splitList(c.ElasticsearchAddrs)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
