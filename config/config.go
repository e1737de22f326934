package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/techmaster-vietnam/goerrorkit"
)

// Config holds application configuration
type Config struct {
	JWT      JWTConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Password PasswordConfig

	// PolicyFile là đường dẫn file YAML override policy của collections (rỗng = dùng mặc định)
	PolicyFile  string `envconfig:"POLICY_FILE"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"eventizer"` // max 20 chars
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile     string `envconfig:"LOG_FILE"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret     string        `envconfig:"JWT_SECRET" default:"your-secret-key-change-in-production"`
	Expiration time.Duration `envconfig:"JWT_EXPIRATION" default:"24h"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string        `envconfig:"PORT" default:"3000"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"eventizer"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// DSN trả về connection string cho gorm.io/driver/postgres
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// RedisConfig holds cache settings for the subscription checker.
// Addr rỗng = không dùng Redis cache.
type RedisConfig struct {
	Addr            string        `envconfig:"REDIS_ADDR"`
	Password        string        `envconfig:"REDIS_PASSWORD"`
	DB              int           `envconfig:"REDIS_DB" default:"0"`
	SubscriptionTTL time.Duration `envconfig:"SUBSCRIPTION_CACHE_TTL" default:"5m"`
}

// PasswordConfig holds password validation rules
type PasswordConfig struct {
	MinLength          int  `envconfig:"PASSWORD_MIN_LENGTH" default:"8"`
	RequireUppercase   bool `envconfig:"PASSWORD_REQUIRE_UPPERCASE" default:"false"`
	RequireLowercase   bool `envconfig:"PASSWORD_REQUIRE_LOWERCASE" default:"false"`
	RequireDigit       bool `envconfig:"PASSWORD_REQUIRE_DIGIT" default:"true"`
	RequireSpecialChar bool `envconfig:"PASSWORD_REQUIRE_SPECIAL" default:"false"`
	MinSpecialChars    int  `envconfig:"PASSWORD_MIN_SPECIAL" default:"1"`
}

// LoadConfig loads configuration from an optional .env file and environment variables
func LoadConfig() (*Config, error) {
	// .env là tùy chọn: không có file thì dùng biến môi trường
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, goerrorkit.NewSystemError(err).WithData(map[string]interface{}{
			"stage": "envconfig",
		})
	}

	// Truncate to max 20 characters if longer
	if len(cfg.ServiceName) > 20 {
		cfg.ServiceName = cfg.ServiceName[:20]
	}
	if cfg.JWT.Secret == "" {
		return nil, goerrorkit.NewSystemError(fmt.Errorf("JWT_SECRET must not be empty"))
	}
	if cfg.JWT.Expiration <= 0 {
		return nil, goerrorkit.NewSystemError(fmt.Errorf("JWT_EXPIRATION must be positive")).WithData(map[string]interface{}{
			"value": cfg.JWT.Expiration.String(),
		})
	}
	if cfg.Password.MinLength < 1 {
		cfg.Password.MinLength = 8
	}
	return &cfg, nil
}
