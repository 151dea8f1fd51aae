package env

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	TopWalletsAPIKey string
	TopWalletsAPIURL string
	BirdeyeAPIKey    string

	TelegramBotToken string
	TelegramChatID   int64

	AnthropicAPIKey string
	OpenAIAPIKey    string
	AIModel         string

	Port     string
	LogLevel string
)

func loadEnvVariable(key string, isRequired bool) string {
	value := os.Getenv(key)
	if isRequired && value == "" {
		log.Fatalf("FATAL: Environment variable %s is required but not set.", key)
	}
	isHidden := key == "TOPWALLETS_API_KEY" || key == "BIRDEYE_API_KEY" ||
		key == "TELEGRAM_BOT_TOKEN" || key == "ANTHROPIC_API_KEY" || key == "OPENAI_API_KEY"
	if value == "" {
		if !isRequired {
			log.Printf("INFO: Environment variable %s is not set.", key)
		}
	} else if isHidden {
		log.Printf("INFO: Loaded %s (value hidden)", key)
	} else {
		log.Printf("INFO: Loaded %s = %s", key, value)
	}
	return value
}

func loadInt64Env(key string, required bool) int64 {
	strValue := loadEnvVariable(key, required)
	if strValue == "" {
		return 0
	}
	id, err := strconv.ParseInt(strValue, 10, 64)
	if err != nil {
		log.Fatalf("FATAL: Failed to parse int64 environment variable %s='%s': %v", key, strValue, err)
	}
	return id
}

func LoadEnv() error {
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: .env file not found or error loading, relying on system environment variables.")
	} else {
		log.Println("INFO: .env file loaded successfully.")
	}

	TopWalletsAPIKey = loadEnvVariable("TOPWALLETS_API_KEY", true)
	TopWalletsAPIURL = loadEnvVariable("TOPWALLETS_API_URL", false)
	BirdeyeAPIKey = loadEnvVariable("BIRDEYE_API_KEY", false)

	TelegramBotToken = loadEnvVariable("TELEGRAM_BOT_TOKEN", false)
	TelegramChatID = loadInt64Env("TELEGRAM_CHAT_ID", false)

	AnthropicAPIKey = loadEnvVariable("ANTHROPIC_API_KEY", false)
	OpenAIAPIKey = loadEnvVariable("OPENAI_API_KEY", false)
	AIModel = loadEnvVariable("AI_MODEL", false)

	Port = loadEnvVariable("PORT", false)
	if Port == "" {
		Port = "8080"
		log.Printf("INFO: PORT not set, defaulting to %s", Port)
	}
	LogLevel = loadEnvVariable("LOG_LEVEL", false)

	if BirdeyeAPIKey == "" {
		log.Println("WARN: BIRDEYE_API_KEY is not set. Candle history and holder concentration will be unavailable.")
	}
	if TelegramBotToken != "" && TelegramChatID == 0 {
		log.Println("WARN: TELEGRAM_BOT_TOKEN is set, but TELEGRAM_CHAT_ID is missing, invalid, or zero.")
	}
	if AnthropicAPIKey == "" && OpenAIAPIKey == "" {
		log.Println("WARN: No AI provider key set. Commentary and trending detection will be disabled.")
	}

	log.Println("INFO: Environment variables loading process complete.")
	return nil
}
