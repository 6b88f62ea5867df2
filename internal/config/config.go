package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUrl           string
	Port            string
	JWTSecret       string
	StripeSecretKey string
	StripeAPIURL    string
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found, falling back to environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	stripeAPIURL := os.Getenv("STRIPE_API_URL")
	if stripeAPIURL == "" {
		stripeAPIURL = "https://api.stripe.com/v1"
	}

	return Config{
		DBUrl:           os.Getenv("DB_URL"),
		Port:            port,
		JWTSecret:       os.Getenv("ACCESS_TOKEN_SECRET"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		StripeAPIURL:    stripeAPIURL,
	}
}
