package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

type Config struct {
	Port      string
	Storage   string
	SQLiteDSN string
	LogLevel  string
	LogFormat string
	Seed      bool
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found")
	}
}

// GetEnvDefault возвращает значение переменной окружения или def, если она не задана
func GetEnvDefault(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

// Load собирает конфигурацию сервера из окружения (.env подхватывается через LoadEnv)
func Load() Config {
	seed, err := strconv.ParseBool(GetEnvDefault("SEED", "true"))
	if err != nil {
		log.Printf("invalid SEED value, using true: %v", err)
		seed = true
	}

	return Config{
		Port:      GetEnvDefault("PORT", "8080"),
		Storage:   GetEnvDefault("STORAGE", StorageMemory),
		SQLiteDSN: GetEnvDefault("SQLITE_DSN", ":memory:"),
		LogLevel:  GetEnvDefault("LOG_LEVEL", "info"),
		LogFormat: GetEnvDefault("LOG_FORMAT", "text"),
		Seed:      seed,
	}
}
