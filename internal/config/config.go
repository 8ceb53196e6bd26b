package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Ai     AIConfig
	Events EventsConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	ChatLogFilePath    string
	CorsAllowedOrigins string
}

type AIConfig struct {
	// Inference endpoints. OllamaBaseURL is the default (CPU) host;
	// GPUBaseURL empty means the adapter_gpu backend is unavailable.
	OllamaBaseURL string
	GPUBaseURL    string

	// Model names per backend.
	AdapterModel  string
	OpenDemoModel string

	// Session defaults for the chat surface.
	DefaultBackend   string
	DefaultBaseModel string

	// Generation parameter defaults, user-tunable per session.
	DefaultTemperature       float64
	DefaultTopP              float64
	DefaultRepetitionPenalty float64
	DefaultMaxNewTokens      int
}

type EventsConfig struct {
	Transport string // "gochannel" or "nats"
	NatsURL   string
	Topic     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			ChatLogFilePath:    getEnv("CHAT_LOG_FILE_PATH", "chat.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		},
		Ai: AIConfig{
			OllamaBaseURL:    getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			GPUBaseURL:       getEnv("OLLAMA_GPU_BASE_URL", ""),
			AdapterModel:     getEnv("ADAPTER_MODEL", "finetuned-adapter"),
			OpenDemoModel:    getEnv("OPEN_DEMO_MODEL", "qwen2.5:0.5b"),
			DefaultBackend:   getEnv("DEFAULT_BACKEND", "open_demo"),
			DefaultBaseModel: getEnv("DEFAULT_BASE_MODEL", "qwen2.5:1.5b-instruct-fp16"),

			DefaultTemperature:       getEnvAsFloat("DEFAULT_TEMPERATURE", 0.7),
			DefaultTopP:              getEnvAsFloat("DEFAULT_TOP_P", 0.95),
			DefaultRepetitionPenalty: getEnvAsFloat("DEFAULT_REPETITION_PENALTY", 1.1),
			DefaultMaxNewTokens:      getEnvAsInt("DEFAULT_MAX_NEW_TOKENS", 512),
		},
		Events: EventsConfig{
			Transport: getEnv("EVENTS_TRANSPORT", "gochannel"),
			NatsURL:   getEnv("NATS_URL", "nats://localhost:4222"),
			Topic:     getEnv("EVENTS_TOPIC_NAME", "PLATFORM_EVENTS"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
