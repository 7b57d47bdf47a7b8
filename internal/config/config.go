package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env        string
	ServerPort string
	DBUrl      string

	JWTSecret    string
	JWTExpiresIn time.Duration
	BcryptCost   int

	ClientURL        string
	Timezone         string
	EmailDomainCheck bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DoctorCacheTTL    time.Duration
	AnalyzeRateLimit  int
	AnalyzeRateWindow time.Duration

	AIAPIKey  string
	AIBaseURL string
	AIModel   string
	AITimeout time.Duration

	SweepEvery time.Duration

	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3AccessKeyID   string
	S3SecretKey     string
	S3PublicBaseURL string
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:        getEnv("APP_ENV", EnvDevelopment),
		ServerPort: getEnv("SERVER_PORT", getEnv("PORT", "5000")),
		DBUrl:      getEnv("DATABASE_URL", ""),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTExpiresIn: getDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		BcryptCost:   getInt("BCRYPT_COST", bcrypt.DefaultCost),

		ClientURL:        getEnv("CLIENT_URL", "http://localhost:5173"),
		Timezone:         getEnv("CLINIC_TIMEZONE", "Asia/Kolkata"),
		EmailDomainCheck: getBool("EMAIL_DOMAIN_CHECK", false),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),

		DoctorCacheTTL:    getDuration("DOCTOR_CACHE_TTL", 5*time.Minute),
		AnalyzeRateLimit:  getInt("ANALYZE_RATE_LIMIT", 20),
		AnalyzeRateWindow: getDuration("ANALYZE_RATE_WINDOW", time.Hour),

		AIAPIKey:  getEnv("AI_API_KEY", getEnv("GEMINI_API_KEY", "")),
		AIBaseURL: getEnv("AI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai/"),
		AIModel:   getEnv("AI_MODEL", "gemini-1.5-flash"),
		AITimeout: getDuration("AI_TIMEOUT", 30*time.Second),

		SweepEvery: getDuration("SWEEP_EVERY", time.Hour),

		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Region:        getEnv("S3_REGION", "ap-south-1"),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:   getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:     getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not defined"))
	}
	if c.DBUrl == "" {
		errs = append(errs, errors.New("DATABASE_URL is not defined"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if d, err := ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return def
}

// ParseDuration accepts Go durations plus a whole-day suffix ("7d").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty duration")
	}
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day duration %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive: %q", s)
	}
	return d, nil
}
