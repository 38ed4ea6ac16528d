package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config представляет конфигурацию приложения
type Config struct {
	Server     ServerConfig     `json:"server"`
	Logger     LoggerConfig     `json:"logger"`
	Catalog    CatalogConfig    `json:"catalog"`
	Allocation AllocationConfig `json:"allocation"`
}

// ServerConfig представляет конфигурацию HTTP сервера
type ServerConfig struct {
	Port            string   `json:"port"`
	Host            string   `json:"host"`
	ReadTimeout     int      `json:"read_timeout"`
	WriteTimeout    int      `json:"write_timeout"`
	ShutdownTimeout int      `json:"shutdown_timeout"`
	AllowedOrigins  []string `json:"allowed_origins"`
}

// LoggerConfig представляет конфигурацию логгера
type LoggerConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
	File   string `json:"file"`
}

// CatalogConfig указывает файл с каталогом купонов магазинов.
type CatalogConfig struct {
	File string `json:"file"`
}

// AllocationConfig хранит настройки расчёта планов.
type AllocationConfig struct {
	// Timezone определяет, будний сегодня день или выходной,
	// если клиент не передал тип дня явно.
	Timezone string `json:"timezone"`
}

// Location загружает часовой пояс расчёта.
func (c AllocationConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid allocation timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load загружает конфигурацию из .env (если есть) и переменных окружения
func Load() *Config {
	// .env необязателен: в контейнере всё приходит из окружения
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("SERVER_READ_TIMEOUT", 10),
			WriteTimeout:    getEnvAsInt("SERVER_WRITE_TIMEOUT", 10),
			ShutdownTimeout: getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30),
			AllowedOrigins:  getEnvAsList("SERVER_ALLOWED_ORIGINS", []string{"*"}),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			File:   getEnv("LOG_FILE", ""),
		},
		Catalog: CatalogConfig{
			File: getEnv("CATALOG_FILE", "stores.json"),
		},
		Allocation: AllocationConfig{
			Timezone: getEnv("ALLOCATION_TIMEZONE", "Asia/Seoul"),
		},
	}
}

// getEnv получает значение переменной окружения с значением по умолчанию
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt получает значение переменной окружения как int с значением по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList разбирает список через запятую; пустые элементы отбрасываются
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
