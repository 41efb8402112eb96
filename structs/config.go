package structs

import "time"

type Config struct {
	Server   *ServerConfig
	Cors     *CorsConfig
	Database *DatabaseConfig
	Cache     *CacheConfig
	Auth      *AuthConfig
	Media     *MediaConfig
	Drafts    *DraftConfig
	RateLimit *RateLimitConfig
}

type ServerConfig struct {
	AppName        string        // Tindahan
	Environment    string        // development, production
	Port           string        // :8082
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSL          bool
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration // in seconds
	MaxIdleTime  time.Duration // in seconds
	ReadTimeout  time.Duration // in seconds
	WriteTimeout time.Duration // in seconds
}

type CacheConfig struct {
	Address         string
	Username        string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	MaxIdleConns    int
	PoolTimeout     time.Duration
	IdleTimeout     time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	ProductViewTTL  time.Duration
}

type AuthConfig struct {
	SessionTokenSecret string
	SessionCookieName  string
}

type MediaConfig struct {
	// UploadRoot is the directory image files are written under.
	// PublicPrefix is the URL prefix they are served from.
	UploadRoot    string
	PublicPrefix  string
	MaxUploadSize int64 // in bytes
}

type RateLimitConfig struct {
	Enabled bool
	// GeneralLimit requests per GeneralWindow, per client IP. Write-heavy
	// seller routes get the stricter WriteLimit.
	GeneralLimit  int
	GeneralWindow time.Duration
	WriteLimit    int
	WriteWindow   time.Duration
}

type DraftConfig struct {
	// TTL is refreshed on every draft save; expired drafts are
	// garbage-collected by redis.
	TTL time.Duration
}
