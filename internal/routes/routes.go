package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"vendorhub_back_end/internal/auth"
	"vendorhub_back_end/internal/handlers"
	"vendorhub_back_end/internal/middleware"
)

// Deps : tout ce que l'enregistrement des routes reçoit de main()
type Deps struct {
	Broker  *auth.Broker
	Redis   *redis.Client
	Auth    *handlers.AuthHandler
	Profile *handlers.ProfileHandler
	Demo    *handlers.DemoHandler
	Search  *handlers.SearchHandler
}

func RegisterRoutes(r *gin.Engine, d *Deps) {
	// Garde des pages : redirections signin/dashboard (les routes /api
	// répondent 401 JSON via AuthRequired)
	r.Use(middleware.RouteGuard(d.Broker))

	api := r.Group("/api")

	// Inscription et authentification (publiques)
	api.POST("/register", middleware.RegisterRateLimit(d.Redis), d.Auth.Register)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", middleware.LoginRateLimit(d.Redis), d.Auth.Login)
		authGroup.GET("/session", d.Auth.Session)
		authGroup.POST("/logout", d.Auth.Logout)
		authGroup.POST("/forgot-password", middleware.ForgotPasswordRateLimit(d.Redis), d.Auth.ForgotPassword)
		authGroup.POST("/reset-password", d.Auth.ResetPassword)
		authGroup.POST("/change-password", middleware.AuthRequired(d.Broker), d.Auth.ChangePassword)

		// OAuth (google, linkedin)
		authGroup.GET("/:provider", d.Auth.BeginOAuth)
		authGroup.GET("/:provider/callback", d.Auth.OAuthCallback)
	}

	// Profil vendeur (protégé)
	profile := api.Group("/profile", middleware.AuthRequired(d.Broker))
	{
		profile.GET("", d.Profile.GetProfile)
		profile.PUT("", d.Profile.PutProfile)
		profile.POST("", d.Profile.PutProfile) // alias legacy
		profile.DELETE("", d.Profile.DeleteProfile)

		profile.GET("/basic-info", d.Profile.GetBasicInfo)
		profile.PUT("/basic-info", d.Profile.PutBasicInfo)
		profile.POST("/basic-info", d.Profile.PutBasicInfo)

		profile.GET("/contact-info", d.Profile.GetContactInfo)
		profile.PUT("/contact-info", d.Profile.PutContactInfo)
		profile.POST("/contact-info", d.Profile.PutContactInfo)
	}

	// Drapeau demo (protégé)
	demo := api.Group("/demo", middleware.AuthRequired(d.Broker))
	{
		demo.GET("", d.Demo.Get)
		demo.PUT("", d.Demo.Set)
		demo.POST("", d.Demo.Toggle)
	}

	// Annuaire vendeurs (protégé)
	api.GET("/vendors/search", middleware.AuthRequired(d.Broker), d.Search.SearchVendors)
}
