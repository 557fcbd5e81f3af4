package config

import (
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port      string
	AppEnv    string
	LogLevel  string
	LogFormat string
	JWTSecret string

	DatabaseURL   string
	MongoURL      string
	MongoDatabase string

	Peers        PeerConfig
	ServiceToken string

	ReminderSchedule string
	ReminderAfter    time.Duration

	Email EmailConfig
}

type PeerConfig struct {
	UserURL       string
	DepartmentURL string
	ProjectURL    string
	TaskURL       string
	DocumentURL   string
	Timeout       time.Duration
}

type EmailConfig struct {
	BrevoAPIKey string
	SenderEmail string
	SenderName  string
}

var loadDotenv sync.Once

// Load reads .env (once per process) and then the environment.
func Load() *Config {
	loadDotenv.Do(func() {
		if _, err := os.Stat(".env"); err == nil {
			_ = godotenv.Load(".env")
		}
	})
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("MONGO_URL", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "workhub")
	v.SetDefault("PEER_TIMEOUT", "5s")
	v.SetDefault("REMINDER_SCHEDULE", "0 9 * * *")
	v.SetDefault("REMINDER_AFTER", "24h")
	return v
}

// FromViper maps an already populated viper instance onto Config.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Port:      v.GetString("PORT"),
		AppEnv:    v.GetString("APP_ENV"),
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
		JWTSecret: v.GetString("JWT_SECRET"),

		DatabaseURL:   v.GetString("DATABASE_URL"),
		MongoURL:      v.GetString("MONGO_URL"),
		MongoDatabase: v.GetString("MONGO_DATABASE"),

		Peers: PeerConfig{
			UserURL:       v.GetString("USER_SERVICE_URL"),
			DepartmentURL: v.GetString("DEPARTMENT_SERVICE_URL"),
			ProjectURL:    v.GetString("PROJECT_SERVICE_URL"),
			TaskURL:       v.GetString("TASK_SERVICE_URL"),
			DocumentURL:   v.GetString("DOCUMENT_SERVICE_URL"),
			Timeout:       v.GetDuration("PEER_TIMEOUT"),
		},
		ServiceToken: v.GetString("SERVICE_TOKEN"),

		ReminderSchedule: v.GetString("REMINDER_SCHEDULE"),
		ReminderAfter:    v.GetDuration("REMINDER_AFTER"),

		Email: EmailConfig{
			BrevoAPIKey: v.GetString("BREVO_API_KEY"),
			SenderEmail: v.GetString("EMAIL_SENDER"),
			SenderName:  v.GetString("EMAIL_SENDER_NAME"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
