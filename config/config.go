package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	DevEnv  = "dev"
	TestEnv = "test"
	ProdEnv = "prod"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	AppEnv   string `mapstructure:"APP_ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
	// text or json
	LogFormat string `mapstructure:"LOG_FORMAT"`

	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSLMODE"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxIdleTime time.Duration `mapstructure:"DB_CONN_MAX_IDLE_TIME"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	// memory or redis
	CacheDriver   string        `mapstructure:"CACHE_DRIVER"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`
	RedisHost     string        `mapstructure:"REDIS_HOST"`
	RedisPort     string        `mapstructure:"REDIS_PORT"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`

	// Empty disables the message broker; notifications are then written
	// directly.
	AMQPURL string `mapstructure:"AMQP_URL"`

	ProxyBackends    string `mapstructure:"PROXY_BACKENDS"`
	CORSAllowOrigins string `mapstructure:"CORS_ALLOW_ORIGINS"`
}

var defaults = map[string]interface{}{
	"PORT":                  "8080",
	"APP_ENV":               DevEnv,
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "text",
	"DB_HOST":               "localhost",
	"DB_PORT":               "5432",
	"DB_USER":               "postgres",
	"DB_PASSWORD":           "postgres",
	"DB_NAME":               "portfolio",
	"DB_SSLMODE":            "disable",
	"DB_MAX_OPEN_CONNS":     25,
	"DB_MAX_IDLE_CONNS":     25,
	"DB_CONN_MAX_IDLE_TIME": "15m",
	"JWT_SECRET":            "your-secret-key-change-this-in-production",
	"CACHE_DRIVER":          "memory",
	"CACHE_TTL":             "30s",
	"REDIS_HOST":            "localhost",
	"REDIS_PORT":            "6379",
	"REDIS_PASSWORD":        "",
	"AMQP_URL":              "",
	"PROXY_BACKENDS":        "",
	"CORS_ALLOW_ORIGINS":    "*",
}

// LoadDotEnvs loads .env files, most specific first. godotenv never
// overrides a variable that is already set, so earlier files win.
func LoadDotEnvs(rootPath string) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = DevEnv
	}

	godotenv.Load(rootPath + ".env." + env + ".local")
	godotenv.Load(rootPath + ".env.local")
	godotenv.Load(rootPath + ".env." + env)
	godotenv.Load(rootPath + ".env")
}

// Load reads the configuration from the environment, after loading any
// .env files found in the working directory.
func Load() (*Config, error) {
	LoadDotEnvs("")
	return FromEnv(viper.New())
}

// FromEnv fills a Config from v, falling back to defaults for every key.
func FromEnv(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &cfg, nil
}

// DSN is the gorm postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// MigrationURL is the postgres:// URL golang-migrate expects.
func (c *Config) MigrationURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func (c *Config) IsProd() bool {
	return c.AppEnv == ProdEnv
}

// Backends splits PROXY_BACKENDS into trimmed, non-empty entries.
func (c *Config) Backends() []string {
	return splitList(c.ProxyBackends)
}

func (c *Config) AllowOrigins() []string {
	return splitList(c.CORSAllowOrigins)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
