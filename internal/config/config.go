package config

import (
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	URL        string
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Session struct {
	TTL          time.Duration
	CookieSecure bool
	SameSite     http.SameSite
}

type Upload struct {
	Driver         string
	Dir            string
	MaxFileSize    int64
	MaxRequestSize int64
	MaxFiles       int
	FetchTimeout   time.Duration
}

type Logging struct {
	Level  string
	Format string
}

type Config struct {
	ServerPort        int
	DB                DB
	MinIO             MinIO
	Redis             Redis
	Session           Session
	Upload            Upload
	Logging           Logging
	JWTSecretKey      string
	BcryptCost        int
	AllowedOrigins    []string
	AuthRateLimit     float64
	AuthRateBurst     int
	MigrationsEnabled bool
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

// parseSameSite maps none|lax|strict onto http.SameSite; anything else is None.
func parseSameSite(value string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteNoneMode
	}
}

func parseOrigins(value string) []string {
	var origins []string
	for _, o := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func LoadDB() DB {
	return DB{
		URL:        getEnv("DATABASE_URL", ""),
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "booking"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

// DSN returns DATABASE_URL when set, otherwise a postgres:// URL built from the parts.
// Both lib/pq and the migration driver accept the URL form.
func (d DB) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.DbUSER, d.DbPASSWORD),
		Host:     net.JoinHostPort(d.DbHOST, d.DbPORT),
		Path:     "/" + d.DbNAME,
		RawQuery: "sslmode=" + url.QueryEscape(d.DbSSLMODE),
	}
	return u.String()
}

func LoadMinIO() MinIO {
	endpoint := getEnv("MINIO_ENDPOINT", "localhost:9000")
	useSSL := getEnvBool("MINIO_USE_SSL", false)

	scheme := "http://"
	if useSSL {
		scheme = "https://"
	}

	publicURL := getEnv("MINIO_PUBLIC_URL", "")
	if publicURL == "" {
		publicURL = scheme + endpoint
	}

	return MinIO{
		Endpoint:   endpoint,
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "photos"),
		UseSSL:     useSSL,
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  strings.TrimSuffix(publicURL, "/"),
	}
}

func LoadUpload() Upload {
	return Upload{
		Driver:         strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
		Dir:            getEnv("UPLOAD_DIR", "uploads"),
		MaxFileSize:    getEnvAsInt64("MAX_UPLOAD_SIZE", 10*1024*1024),
		MaxRequestSize: getEnvAsInt64("MAX_REQUEST_SIZE", 100*1024*1024),
		MaxFiles:       getEnvAsInt("MAX_UPLOAD_FILES", 100),
		FetchTimeout:   parseDuration(getEnv("FETCH_TIMEOUT", "15s"), 15*time.Second),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort: getEnvAsInt("SERVER_PORT", 4000),
		DB:         LoadDB(),
		MinIO:      LoadMinIO(),
		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Session: Session{
			TTL:          parseDuration(getEnv("SESSION_TTL", "168h"), 7*24*time.Hour),
			CookieSecure: getEnvBool("COOKIE_SECURE", true),
			SameSite:     parseSameSite(getEnv("COOKIE_SAMESITE", "none")),
		},
		Upload: LoadUpload(),
		Logging: Logging{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		JWTSecretKey:      getEnv("JWT_SECRET_KEY", ""),
		BcryptCost:        getEnvAsInt("BCRYPT_COST", 10),
		AllowedOrigins:    parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		AuthRateLimit:     getEnvAsFloat("AUTH_RATE_LIMIT", 5),
		AuthRateBurst:     getEnvAsInt("AUTH_RATE_BURST", 10),
		MigrationsEnabled: getEnvBool("MIGRATIONS_ENABLED", true),
	}
}
