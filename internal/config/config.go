package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	GeminiAPIKey          string
	TranslationModel      string
	WorkerCount           int
	BatchSize             int
	MaxConcurrentAPICalls int
	TranslationMemoryPath string
	TerminologyPath       string
	ScriptExtension       string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		TranslationModel:      getEnv("TRANSLATION_MODEL", "gemini-2.5-flash"),
		WorkerCount:           getEnvInt("WORKER_COUNT", 8),
		BatchSize:             getEnvInt("BATCH_SIZE", 20),
		MaxConcurrentAPICalls: getEnvInt("MAX_CONCURRENT_API_CALLS", 5),
		TranslationMemoryPath: getEnv("TRANSLATION_MEMORY_PATH", "translation_memory.json"),
		TerminologyPath:       getEnv("TERMINOLOGY_PATH", ""),
		ScriptExtension:       getEnv("SCRIPT_EXTENSION", ".ast"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
