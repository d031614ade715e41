package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// UseDatabase выбирает бэкенд хранилища на старте:
	// true — Postgres, false — память процесса. В рантайме не меняется.
	UseDatabase bool

	DbHost     string
	DbPort     string
	DbUser     string
	DbPass     string
	DbName     string
	DbSSLMode  string
	DbPoolSize int

	Log      string
	LogLevel string
	Env      string // dev|prod
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует — чтобы не создавать зависимость от logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	useDB, _ := strconv.ParseBool(def(os.Getenv("USE_DATABASE"), "false"))
	poolSize, err := strconv.Atoi(def(os.Getenv("DB_POOL_SIZE"), "10"))
	if err != nil || poolSize < 1 {
		poolSize = 10
	}

	cfg := &Config{
		Port:        def(os.Getenv("PORT"), "8080"),
		UseDatabase: useDB,

		DbHost:     os.Getenv("DB_HOST"),
		DbPort:     def(os.Getenv("DB_PORT"), "5432"),
		DbUser:     os.Getenv("DB_USER"),
		DbPass:     os.Getenv("DB_PASSWORD"),
		DbName:     os.Getenv("DB_NAME"),
		DbSSLMode:  def(os.Getenv("DB_SSLMODE"), "disable"),
		DbPoolSize: poolSize,

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),
	}

	return cfg, nil
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	// Критичные: БД нужна только при USE_DATABASE=true
	if c.UseDatabase && (c.DbHost == "" || c.DbUser == "" || c.DbName == "") {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}

	if !c.UseDatabase {
		warnings = append(warnings, "USE_DATABASE=false: данные живут только до рестарта процесса")
	}

	if c.Port == "" {
		warnings = append(warnings, "PORT is empty, using default 8080")
	}

	return warnings, nil
}

// GetDSN — полная DSN (с паролем)
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&pool_max_conns=%d",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode, c.DbPoolSize,
	)
}

// GetDSNSafe — DSN без пароля (для логов)
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s&pool_max_conns=%d",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode, c.DbPoolSize,
	)
}
