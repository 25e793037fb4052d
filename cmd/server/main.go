package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"vendorhub_back_end/internal/auth"
	"vendorhub_back_end/internal/cache"
	"vendorhub_back_end/internal/config"
	"vendorhub_back_end/internal/database"
	"vendorhub_back_end/internal/handlers"
	"vendorhub_back_end/internal/routes"
	"vendorhub_back_end/internal/services"
	"vendorhub_back_end/internal/store"
	"vendorhub_back_end/internal/utils"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer db.Close()

	// Stores construits une fois, injectés partout — cycle de vie détenu ici
	users := store.NewUserStore(db.Scylla)
	profiles := store.NewProfileStore(db.Scylla)
	demo := store.NewDemoStore(db.Scylla)
	audit := store.NewAuditStore(db.Scylla)
	tokens := cache.NewTokenStore(db.Redis)

	// Les lectures de session passent par le cache Redis
	cachedUsers := cache.NewUserCache(db.Redis, users)

	authenticator := auth.NewAuthenticator(users)
	broker := auth.NewBroker(cfg.JWTSecret, cachedUsers)
	mailer := utils.NewMailer(cfg)
	vendorIndex := services.NewVendorIndex(db.Elastic)

	auth.InitOAuthProviders(cfg)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, &routes.Deps{
		Broker:  broker,
		Redis:   db.Redis,
		Auth:    handlers.NewAuthHandler(cfg, authenticator, broker, users, tokens, audit, mailer),
		Profile: handlers.NewProfileHandler(profiles, users, vendorIndex, audit),
		Demo:    handlers.NewDemoHandler(demo),
		Search:  handlers.NewSearchHandler(vendorIndex),
	})

	log.Println("🚀 Serveur VendorHub lancé sur le port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Erreur démarrage serveur: %v", err)
	}
}
