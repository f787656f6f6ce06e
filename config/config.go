
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	ServerPort    string       `mapstructure:"SERVER_PORT"`
	GinMode       string       `mapstructure:"GIN_MODE"`
	QuestionsFile string       `mapstructure:"QUESTIONS_FILE"`
	ImportDir     string       `mapstructure:"IMPORT_DIR"`
	OpenAI        OpenAIConfig `mapstructure:"OPENAI"`
}

// OpenAIConfig holds the explanation-service configuration. An API key that
// is absent or still the shipped placeholder degrades explanations to a
// fixed instructional message instead of failing startup.
type OpenAIConfig struct {
	APIKey  string        `mapstructure:"API_KEY"`
	BaseURL string        `mapstructure:"BASE_URL"`
	Model   string        `mapstructure:"MODEL"`
	Timeout time.Duration `mapstructure:"TIMEOUT"`
}

// LoadConfig loads configuration from .env, environment variables and config.yaml
func LoadConfig() (*Config, error) {
	// Load .env first so plain OPENAI_API_KEY exports work
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables and defaults")
	}

	viper.SetConfigName("config") // config.yaml
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	// Set defaults
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("GIN_MODE", "debug") // gin.DebugMode, gin.ReleaseMode, gin.TestMode
	viper.SetDefault("QUESTIONS_FILE", "questions.json")
	viper.SetDefault("IMPORT_DIR", "")
	viper.SetDefault("OPENAI.API_KEY", "your-api-key") // Placeholder sentinel, degrades gracefully
	viper.SetDefault("OPENAI.BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("OPENAI.MODEL", "gpt-4o-mini")
	viper.SetDefault("OPENAI.TIMEOUT", "60s")

	// Read from config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("config.yaml not found, using environment variables and defaults")
		} else {
			return nil, fmt.Errorf("fatal error config file: %w", err)
		}
	}

	// Override with environment variables (e.g., MCQUIZ_SERVER_PORT)
	viper.SetEnvPrefix("MCQUIZ")
	viper.AutomaticEnv()
	// The credential keeps its conventional unprefixed name
	_ = viper.BindEnv("OPENAI.API_KEY", "OPENAI_API_KEY")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &cfg, nil
}
