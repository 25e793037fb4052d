package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	// Limites par endpoint
	LoginMaxAttempts          = 5
	RegisterMaxAttempts       = 3
	ForgotPasswordMaxAttempts = 3

	// Durées de cooldown
	LoginCooldown          = 15 * time.Minute
	RegisterCooldown       = 30 * time.Minute
	ForgotPasswordCooldown = 10 * time.Minute
)

// LoginRateLimit limite les tentatives de connexion par email — bcrypt
// ralentit déjà chaque tentative, ceci bloque les rafales
func LoginRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return emailRateLimit(rdb, "login_attempts:", LoginMaxAttempts, LoginCooldown,
		"Trop de tentatives de connexion, réessayez plus tard")
}

// RegisterRateLimit limite les inscriptions par email
func RegisterRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return emailRateLimit(rdb, "register_attempts:", RegisterMaxAttempts, RegisterCooldown,
		"Trop de tentatives d'inscription, réessayez plus tard")
}

// ForgotPasswordRateLimit limite les demandes de réinitialisation
func ForgotPasswordRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return emailRateLimit(rdb, "forgot_attempts:", ForgotPasswordMaxAttempts, ForgotPasswordCooldown,
		"Trop de demandes de réinitialisation, réessayez plus tard")
}

func emailRateLimit(rdb *redis.Client, prefix string, maxAttempts int, cooldown time.Duration, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Lire le body sans le consommer
		bodyBytes, _ := io.ReadAll(c.Request.Body)

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			c.Next()
			return
		}

		// Remettre le body pour les handlers suivants
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		ctx := c.Request.Context()
		key := prefix + input.Email

		attempts, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis indisponible : on laisse passer plutôt que de bloquer tout le monde
			c.Next()
			return
		}
		if attempts == 1 {
			rdb.Expire(ctx, key, cooldown)
		}

		if attempts > int64(maxAttempts) {
			ttl, _ := rdb.TTL(ctx, key).Result()
			c.Header("Retry-After", fmt.Sprintf("%d", int(ttl.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": message})
			c.Abort()
			return
		}

		c.Next()
	}
}
