package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	DBPath      string
	CatalogPath string
	AccessToken string

	ColorScheme string
	ShowIcons   bool
	HitRadius   float64
}

// Load загружает конфигурацию из переменных окружения. Файл .env из
// рабочего каталога подхватывается, если есть; настоящие переменные
// окружения важнее него.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[CONFIG] .env ignored: %v", err)
	}

	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		DBPath:       getEnv("DB_PATH", "data/db/floors.db"),
		CatalogPath:  getEnv("CATALOG_PATH", ""),
		AccessToken:  getEnv("ACCESS_TOKEN", ""),
		ColorScheme:  getEnv("COLOR_SCHEME", "default"),
		ShowIcons:    getEnvAsBool("SHOW_ICONS", false),
		HitRadius:    getEnvAsFloat("HIT_RADIUS", 0.5),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
