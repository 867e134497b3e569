package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverFS = "fs"
	StorageDriverS3 = "s3"
)

type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	CORSOrigins string `mapstructure:"CORS_ORIGINS"` // список через запятую

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     int    `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBScheme   string `mapstructure:"DB_SCHEME"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// --- Хранилище блобов ---
	StorageDriver string `mapstructure:"STORAGE_DRIVER"` // fs | s3
	UploadDir     string `mapstructure:"UPLOAD_DIR"`
	MaxUploadMB   int64  `mapstructure:"MAX_UPLOAD_MB"`
	PageSize      int    `mapstructure:"PAGE_SIZE"`
	ListTTL       int    `mapstructure:"LIST_TTL"` // секунды

	// --- S3 (для STORAGE_DRIVER=s3) ---
	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3Region    string `mapstructure:"S3_REGION"`
	S3Bucket    string `mapstructure:"S3_BUCKET"`
	S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey string `mapstructure:"S3_SECRET_KEY"`
	S3UseSSL    bool   `mapstructure:"S3_USE_SSL"`
	S3PathStyle bool   `mapstructure:"S3_PATH_STYLE"`
}

// String реализует интерфейс Stringer
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  AppPort: %s\n", c.AppPort))
	sb.WriteString(fmt.Sprintf("  CORSOrigins: %s\n", c.CORSOrigins))
	sb.WriteString(fmt.Sprintf("  DBHost: %s\n", c.DBHost))
	sb.WriteString(fmt.Sprintf("  DBPort: %d\n", c.DBPort))
	sb.WriteString(fmt.Sprintf("  DBUser: %s\n", c.DBUser))
	sb.WriteString(fmt.Sprintf("  DBName: %s\n", c.DBName))
	sb.WriteString(fmt.Sprintf("  DBScheme: %s\n", c.DBScheme))

	// пароли маскируем
	if c.DBPassword != "" {
		sb.WriteString("  DBPassword: ********\n")
	} else {
		sb.WriteString("  DBPassword: (empty)\n")
	}

	sb.WriteString(fmt.Sprintf("  RedisAddr: %s\n", c.RedisAddr))
	sb.WriteString(fmt.Sprintf("  RedisDB: %d\n", c.RedisDB))
	if c.RedisPassword != "" {
		sb.WriteString("  RedisPassword: ********\n")
	} else {
		sb.WriteString("  RedisPassword: (empty)\n")
	}

	sb.WriteString(fmt.Sprintf("  StorageDriver: %s\n", c.StorageDriver))
	sb.WriteString(fmt.Sprintf("  UploadDir: %s\n", c.UploadDir))
	sb.WriteString(fmt.Sprintf("  MaxUploadMB: %d\n", c.MaxUploadMB))
	sb.WriteString(fmt.Sprintf("  PageSize: %d\n", c.PageSize))
	sb.WriteString(fmt.Sprintf("  ListTTL: %d\n", c.ListTTL))

	if c.StorageDriver == StorageDriverS3 {
		sb.WriteString(fmt.Sprintf("  S3Endpoint: %s\n", c.S3Endpoint))
		sb.WriteString(fmt.Sprintf("  S3Region: %s\n", c.S3Region))
		sb.WriteString(fmt.Sprintf("  S3Bucket: %s\n", c.S3Bucket))
		if c.S3AccessKey != "" {
			sb.WriteString("  S3AccessKey: ********\n")
		} else {
			sb.WriteString("  S3AccessKey: (empty)\n")
		}
		if c.S3SecretKey != "" {
			sb.WriteString("  S3SecretKey: ********\n")
		} else {
			sb.WriteString("  S3SecretKey: (empty)\n")
		}
		sb.WriteString(fmt.Sprintf("  S3UseSSL: %v\n", c.S3UseSSL))
		sb.WriteString(fmt.Sprintf("  S3PathStyle: %v\n", c.S3PathStyle))
	}

	return sb.String()
}

// LoadFromEnv загружает конфигурацию из переменных окружения
func LoadFromEnv() (*Config, error) {
	// Загружаем .env только для локальной разработки
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.New("failed to load .env")
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	// Регистрируем интересующие ключи окружения
	keys := []string{
		"APP_ENV", "APP_PORT", "CORS_ORIGINS",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SCHEME",
		"REDIS_ADDR", "REDIS_DB", "REDIS_PASSWORD",
		"STORAGE_DRIVER", "UPLOAD_DIR", "MAX_UPLOAD_MB", "PAGE_SIZE", "LIST_TTL",
		"S3_ENDPOINT", "S3_REGION", "S3_BUCKET", "S3_ACCESS_KEY", "S3_SECRET_KEY",
		"S3_USE_SSL", "S3_PATH_STYLE",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// Дефолты, чтобы сервис поднимался без лишней конфигурации
	v.SetDefault("APP_PORT", ":5000")
	v.SetDefault("DB_SCHEME", "public")
	v.SetDefault("STORAGE_DRIVER", StorageDriverFS)
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("MAX_UPLOAD_MB", 50)
	v.SetDefault("PAGE_SIZE", 5)
	v.SetDefault("LIST_TTL", 60)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	switch cfg.StorageDriver {
	case StorageDriverFS, StorageDriverS3:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	return &cfg, nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
