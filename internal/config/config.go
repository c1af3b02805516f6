package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort          int    `mapstructure:"APP_PORT"`
	DatabasePath     string `mapstructure:"DATABASE_PATH"`
	DataDir          string `mapstructure:"DATA_DIR"`
	OllamaURL        string `mapstructure:"OLLAMA_URL"`
	EmbeddingModel   string `mapstructure:"EMBEDDING_MODEL"`
	GenerationModel  string `mapstructure:"GENERATION_MODEL"`
	GeminiAPIKey     string `mapstructure:"GEMINI_API_KEY"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
	ContextCharLimit int    `mapstructure:"CONTEXT_CHAR_LIMIT"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "data/shamba.db")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("OLLAMA_URL", "http://ollama:11434")
	viper.SetDefault("EMBEDDING_MODEL", "nomic-embed-text")
	viper.SetDefault("GENERATION_MODEL", "gemini-1.5-flash")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("CONTEXT_CHAR_LIMIT", 1500)

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
