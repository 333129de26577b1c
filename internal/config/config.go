package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

/* ---------- raw structs ---------- */

type DBConfig struct {
	Host, User, Password, DBName, SSLMode string
	Port                                  int
}

type Config struct {
	WebHost         string
	WebPort         int
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	StorageDriver string // postgres | file | memory
	StoragePath   string
	DB            DBConfig

	LogLevel       string
	LogDevelopment bool
}

// Addr is the HTTP listen address.
func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.WebHost, c.WebPort) }

/* ---------- loader ---------- */

// Load resolves defaults, then the optional config file, then environment.
// An empty path means config.yaml in the working directory, if any.
func Load(path string) (Config, error) {
	_ = godotenv.Load() // .env is optional

	v := viper.New()
	v.SetDefault("web.host", "0.0.0.0")
	v.SetDefault("web.port", 8080)
	v.SetDefault("web.max_body_bytes", 1<<20)
	v.SetDefault("web.shutdown_timeout", "10s")
	v.SetDefault("web.allowed_origins", []string{"*"})
	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("storage.path", "./data")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetEnvPrefix("CONTACTD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		_ = v.ReadInConfig() // ignore missing config file
	}

	c := Config{
		WebHost:         v.GetString("web.host"),
		WebPort:         v.GetInt("web.port"),
		MaxBodyBytes:    v.GetInt64("web.max_body_bytes"),
		ShutdownTimeout: v.GetDuration("web.shutdown_timeout"),
		AllowedOrigins:  v.GetStringSlice("web.allowed_origins"),
		StorageDriver:   strings.ToLower(v.GetString("storage.driver")),
		StoragePath:     v.GetString("storage.path"),
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		LogLevel:       v.GetString("log.level"),
		LogDevelopment: v.GetBool("log.development"),
	}

	// ---- OVERRIDE WITH CONVENTIONAL DB ENV VARS (STRICT) ----
	if s := os.Getenv("DATABASE_HOST"); s != "" {
		c.DB.Host = s
	}
	if s := os.Getenv("DATABASE_PORT"); s != "" {
		if _, err := fmt.Sscanf(s, "%d", &c.DB.Port); err != nil {
			return Config{}, fmt.Errorf("DATABASE_PORT %q: %w", s, err)
		}
	}
	if s := os.Getenv("DATABASE_USER"); s != "" {
		c.DB.User = s
	}
	if s := os.Getenv("DATABASE_PASSWORD"); s != "" {
		c.DB.Password = s
	}
	if s := os.Getenv("DATABASE_NAME"); s != "" {
		c.DB.DBName = s
	}

	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.StorageDriver {
	case "postgres", "file", "memory":
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("web.max_body_bytes must be positive")
	}
	return nil
}
