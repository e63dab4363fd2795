package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/affistack/brandledger/pkg/db"
	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	APIBaseURL  string
	APIToken    string
	HTTPTimeout int

	SyncPageSize    int
	ReportPageSize  int
	TransactionPage int
	MaxPages        int

	DBType            string
	DBPath            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "brandledger"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),

		APIBaseURL:  getenv("PARTNERBOOST_BASE_URL", "https://app.partnerboost.com"),
		APIToken:    strings.TrimSpace(getenv("PARTNERBOOST_TOKEN", "")),
		HTTPTimeout: getenvInt("HTTP_TIMEOUT_SECONDS", 30),

		SyncPageSize:    getenvInt("SYNC_PAGE_SIZE", 50),
		ReportPageSize:  getenvInt("REPORT_PAGE_SIZE", 500),
		TransactionPage: getenvInt("TRANSACTION_PAGE_LIMIT", 1000),
		MaxPages:        getenvInt("MAX_PAGES", 1000),

		DBType:            getenv("DATABASE_TYPE", "sqlite"),
		DBPath:            getenv("DATABASE_PATH", "products.db"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "brandledger"),
		DBUser:            getenv("DATABASE_USER", "brandledger"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 2),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 5),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
	}
}

// DBConfig maps the loaded configuration onto the storage layer config.
func DBConfig(c Config) db.Config {
	return db.Config{
		Type:            c.DBType,
		Path:            c.DBPath,
		Host:            c.DBHost,
		Port:            c.DBPort,
		Name:            c.DBName,
		User:            c.DBUser,
		Password:        c.DBPassword,
		SSLMode:         c.DBSSLMode,
		MaxIdleConn:     c.DBMaxIdleConn,
		MaxOpenConn:     c.DBMaxOpenConn,
		ConnMaxLifetime: c.DBConnMaxLifetime,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
