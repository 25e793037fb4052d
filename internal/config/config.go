package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config regroupe toute la configuration lue au démarrage. Les composants
// la reçoivent explicitement — pas de variable globale cachée.
type Config struct {
	Port string

	// ScyllaDB
	ScyllaHosts      []string
	ScyllaKeyspace   string
	ScyllaUsername   string
	ScyllaPassword   string
	ScyllaSSLEnabled bool
	ScyllaCACertPath string

	// Redis
	RedisHost     string
	RedisPassword string

	// Elasticsearch (optionnel — la recherche vendeurs est désactivée sans)
	ElasticURL      string
	ElasticUser     string
	ElasticPassword string

	// Sessions
	JWTSecret     string
	SessionSecret string

	// OAuth
	BaseURL              string
	FrontendURL          string
	GoogleClientID       string
	GoogleClientSecret   string
	LinkedInClientID     string
	LinkedInClientSecret string

	// SMTP
	SMTPHost     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
}

// Load charge le fichier .env puis construit la configuration.
// L'absence de la connexion ScyllaDB ou des secrets de session est fatale.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		ScyllaKeyspace:       getEnv("SCYLLA_KEYSPACE", "vendorhub"),
		ScyllaUsername:       os.Getenv("SCYLLA_USERNAME"),
		ScyllaPassword:       os.Getenv("SCYLLA_PASSWORD"),
		ScyllaSSLEnabled:     strings.ToLower(os.Getenv("SCYLLA_SSL_ENABLED")) == "true",
		ScyllaCACertPath:     os.Getenv("SCYLLA_SSL_CA_PATH"),
		RedisHost:            getEnv("REDIS_HOST", "localhost:6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		ElasticURL:           os.Getenv("ELASTIC_URL"),
		ElasticUser:          os.Getenv("ELASTIC_USER"),
		ElasticPassword:      os.Getenv("ELASTIC_PASSWORD"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		SessionSecret:        os.Getenv("SESSION_SECRET"),
		BaseURL:              getEnv("BASE_URL", "http://localhost:8080"),
		FrontendURL:          getEnv("FRONTEND_URL", "http://localhost:3000"),
		GoogleClientID:       os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   os.Getenv("GOOGLE_CLIENT_SECRET"),
		LinkedInClientID:     os.Getenv("LINKEDIN_CLIENT_ID"),
		LinkedInClientSecret: os.Getenv("LINKEDIN_CLIENT_SECRET"),
		SMTPHost:             os.Getenv("SMTP_HOST"),
		SMTPUsername:         os.Getenv("SMTP_USERNAME"),
		SMTPPassword:         os.Getenv("SMTP_PASSWORD"),
		MailFrom:             getEnv("MAIL_FROM", "noreply@vendorhub.local"),
	}

	hosts := os.Getenv("SCYLLA_HOSTS")
	if hosts == "" {
		log.Fatal("❌ SCYLLA_HOSTS manquant dans .env — impossible de démarrer sans base de données")
	}
	cfg.ScyllaHosts = strings.Split(hosts, ",")

	if cfg.JWTSecret == "" {
		log.Fatal("❌ JWT_SECRET manquant dans .env")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("❌ SESSION_SECRET manquant dans .env")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
