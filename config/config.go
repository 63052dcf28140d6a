package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string
	}
	App struct {
		ID string
	}
	DevPortal struct {
		BaseURL string
		APIKey  string
	}
	Database struct {
		DSN string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	JWT struct {
		Secret string
	}
	Payments struct {
		MinAmount       float64
		MaxAmount       float64
		PendingTTLMin   int
		AllowUnverified bool
	}
	Nonce struct {
		TTLSeconds int
	}
}

var C Config

func Load() {
	viper.SetConfigFile("config/config.yaml")

	viper.SetDefault("server.port", ":8080")
	viper.SetDefault("devportal.baseurl", "https://developer.worldcoin.org")
	viper.SetDefault("payments.minamount", 0.1)
	viper.SetDefault("payments.maxamount", 100)
	viper.SetDefault("payments.pendingttlmin", 30)
	viper.SetDefault("payments.allowunverified", false)
	viper.SetDefault("nonce.ttlseconds", 600)

	// secrets come from the host environment, never from the yaml file
	_ = viper.BindEnv("app.id", "APP_ID")
	_ = viper.BindEnv("devportal.apikey", "DEV_PORTAL_API_KEY")
	_ = viper.BindEnv("jwt.secret", "JWT_SECRET")

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}
	if err := viper.Unmarshal(&C); err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}
}
