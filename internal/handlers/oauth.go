package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"

	"vendorhub_back_end/internal/auth"
	"vendorhub_back_end/internal/cache"
)

// ================== AUTH SOCIALE (WEB) ==================

// GET /api/auth/:provider — démarre le flux OAuth. L'URL de retour
// demandée est mémorisée en Redis, indexée par le state.
func (h *AuthHandler) BeginOAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider != "google" && provider != "linkedin" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provider non supporté"})
		return
	}

	state := cache.NewRandomToken()
	if redirectURL := c.Query("redirect_url"); redirectURL != "" {
		if err := h.tokens.SaveOAuthRedirect(c.Request.Context(), state, redirectURL); err != nil {
			log.Printf("⚠️ Erreur sauvegarde redirect OAuth: %v", err)
		}
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	q.Set("state", state)
	c.Request.URL.RawQuery = q.Encode()
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// GET /api/auth/:provider/callback — termine le flux OAuth, résout
// l'identité et pose la session
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	provider := c.Param("provider")
	state := c.Query("state")

	var email, name string

	switch provider {
	case "google":
		code := c.Query("code")
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètres OAuth invalides"})
			return
		}

		oauthCfg := h.cfg.GoogleOAuthConfig()
		token, err := oauthCfg.Exchange(c.Request.Context(), code)
		if err != nil {
			log.Printf("❌ Erreur échange code Google: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Échec de l'authentification Google"})
			return
		}

		resp, err := oauthCfg.Client(c.Request.Context(), token).
			Get("https://www.googleapis.com/oauth2/v2/userinfo")
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Échec de l'authentification Google"})
			return
		}
		defer resp.Body.Close()

		var gu struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil || gu.Email == "" {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Profil Google invalide"})
			return
		}
		email, name = gu.Email, gu.Name

	case "linkedin":
		q := c.Request.URL.Query()
		q.Set("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
		if err != nil {
			log.Printf("❌ Erreur callback LinkedIn: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Échec de l'authentification LinkedIn"})
			return
		}
		email, name = gothUser.Email, gothUser.Name

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provider non supporté"})
		return
	}

	if email == "" {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Le provider n'a pas fourni d'email"})
		return
	}

	// Politique de liaison par email : un email existant se rattache au
	// compte existant, sinon création d'un compte sans mot de passe
	user, err := h.broker.ResolveOrCreateUser(c.Request.Context(), email, name, auth.OAuth{Provider: provider})
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.broker.IssueToken(auth.RawAuthEvent{
		UserID:   user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Source:   auth.OAuth{Provider: provider},
		Occurred: time.Now(),
	})
	if err != nil {
		log.Printf("❌ Erreur génération token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	h.setSessionCookie(c, token)
	h.logAction(c, user.ID, user.Email, "oauth_login", "sessions")

	redirectURI := h.tokens.TakeOAuthRedirect(c.Request.Context(), state)
	final := auth.ResolveRedirect(h.cfg.FrontendURL, redirectURI)

	sep := "?"
	if strings.Contains(final, "?") {
		sep = "&"
	}
	c.Redirect(http.StatusTemporaryRedirect, final+sep+"token="+url.QueryEscape(token))
}
