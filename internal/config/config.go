package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	PORT           string
	DATA_DIR       string
	SESSION_SECRET string
	LOG_LEVEL      string
	KAFKA_ADDRESS  string
	ES_URL         string
	ES_USER        string
	ES_PASSWORD    string
	ES_INDEX       string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		PORT:           os.Getenv("PORT"),
		DATA_DIR:       os.Getenv("DATA_DIR"),
		SESSION_SECRET: os.Getenv("SESSION_SECRET"),
		LOG_LEVEL:      os.Getenv("LOG_LEVEL"),
		KAFKA_ADDRESS:  os.Getenv("KAFKA_ADDRESS"),
		ES_URL:         os.Getenv("ES_URL"),
		ES_USER:        os.Getenv("ES_USER"),
		ES_PASSWORD:    os.Getenv("ES_PASSWORD"),
		ES_INDEX:       os.Getenv("ES_INDEX"),
	}

	if config.PORT == "" {
		config.PORT = "8080"
	}
	if config.DATA_DIR == "" {
		config.DATA_DIR = "data"
	}
	if config.ES_INDEX == "" {
		config.ES_INDEX = "product"
	}

	return config, nil
}
