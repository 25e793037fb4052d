package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vendorhub_back_end/internal/auth"
)

// SessionCookie : nom du cookie de session posé à la connexion
const SessionCookie = "vendorhub_session"

// TokenFromRequest extrait le token depuis le header Authorization
// (Bearer) ou, à défaut, depuis le cookie de session
func TokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// AuthRequired protège les routes API : 401 JSON sans session valide.
// La validation échoue fermé — token malformé, expiré ou mal signé =
// pas de session.
func AuthRequired(broker *auth.Broker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := TokenFromRequest(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token manquant"})
			c.Abort()
			return
		}

		claims, ok := broker.Validate(tokenString)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}
