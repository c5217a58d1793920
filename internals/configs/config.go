package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	} else {
		log.Println("✅ JWT_SECRET loaded.")
	}
	if JWTRefreshSecret == "" {
		log.Println("❌ JWT_REFRESH_SECRET is not set!")
	} else {
		log.Println("✅ JWT_REFRESH_SECRET loaded.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	if v, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

// =======================
// SMTP (transactional mail)
// =======================
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func LoadSMTPConfig() SMTPConfig {
	return SMTPConfig{
		Host:     GetEnv("EMAIL_HOST", "smtp.gmail.com"),
		Port:     GetEnvInt("EMAIL_PORT", 587),
		Username: GetEnv("EMAIL_HOST_USER"),
		Password: GetEnv("EMAIL_HOST_PASSWORD"),
		From:     GetEnv("DEFAULT_FROM_EMAIL"),
	}
}

// =======================
// PUSHER (realtime + SMS bridge)
// =======================
type PusherConfig struct {
	AppID   string
	Key     string
	Secret  string
	Cluster string
}

func LoadPusherConfig() PusherConfig {
	return PusherConfig{
		AppID:   GetEnv("PUSHER_APP_ID"),
		Key:     GetEnv("PUSHER_KEY"),
		Secret:  GetEnv("PUSHER_SECRET"),
		Cluster: GetEnv("PUSHER_CLUSTER", "mt1"),
	}
}

// =======================
// WHATSAPP (Graph API)
// =======================
type WhatsAppConfig struct {
	PhoneID     string
	AccessToken string
}

func LoadWhatsAppConfig() WhatsAppConfig {
	return WhatsAppConfig{
		PhoneID:     GetEnv("WHATSAPP_PHONE_ID"),
		AccessToken: GetEnv("WHATSAPP_ACCESS_TOKEN"),
	}
}

// MediaRoot is where visitor photos, signatures, QR images and badge
// templates are persisted; served statically under /media.
func MediaRoot() string {
	return GetEnv("MEDIA_ROOT", "./media")
}
