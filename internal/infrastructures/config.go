package infrastructures

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	DATABASE_URL      string
	REDIS_ADDRESS     string
	REDIS_PASSWORD    string
	JWT_SECRET_KEY    string
	JWT_EXPIRY_MINUTE int
	MAIL_API_URL      string
	MAIL_API_KEY      string
	MAIL_FROM_ADDRESS string
}

var Config *AppConfig

func LoadConfig() *AppConfig {
	godotenv.Load()

	expiryMinute, err := strconv.Atoi(os.Getenv("JWT_EXPIRY_MINUTE"))
	if err != nil || expiryMinute <= 0 {
		expiryMinute = 60
	}

	Config = &AppConfig{
		DATABASE_URL:      os.Getenv("DATABASE_URL"),
		REDIS_ADDRESS:     os.Getenv("REDIS_ADDRESS"),
		REDIS_PASSWORD:    os.Getenv("REDIS_PASSWORD"),
		JWT_SECRET_KEY:    os.Getenv("JWT_SECRET_KEY"),
		JWT_EXPIRY_MINUTE: expiryMinute,
		MAIL_API_URL:      os.Getenv("MAIL_API_URL"),
		MAIL_API_KEY:      os.Getenv("MAIL_API_KEY"),
		MAIL_FROM_ADDRESS: os.Getenv("MAIL_FROM_ADDRESS"),
	}

	return Config
}
