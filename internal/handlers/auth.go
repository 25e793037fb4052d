package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vendorhub_back_end/internal/auth"
	"vendorhub_back_end/internal/cache"
	"vendorhub_back_end/internal/config"
	"vendorhub_back_end/internal/middleware"
	"vendorhub_back_end/internal/store"
	"vendorhub_back_end/internal/utils"
)

// AuthHandler expose les flux d'authentification : inscription, connexion
// par identifiants, session courante, changement et réinitialisation de
// mot de passe
type AuthHandler struct {
	cfg    *config.Config
	authn  *auth.Authenticator
	broker *auth.Broker
	tokens *cache.TokenStore
	audit  *store.AuditStore
	mailer *utils.Mailer
	users  auth.UserStore
}

func NewAuthHandler(cfg *config.Config, authn *auth.Authenticator, broker *auth.Broker,
	users auth.UserStore, tokens *cache.TokenStore, audit *store.AuditStore, mailer *utils.Mailer) *AuthHandler {
	return &AuthHandler{
		cfg:    cfg,
		authn:  authn,
		broker: broker,
		users:  users,
		tokens: tokens,
		audit:  audit,
		mailer: mailer,
	}
}

func (h *AuthHandler) logAction(c *gin.Context, userID, email, action, resource string) {
	if h.audit != nil {
		h.audit.LogAction(userID, email, action, resource, c.ClientIP())
	}
}

func (h *AuthHandler) logFailure(c *gin.Context, email, action, resource, category string) {
	if h.audit != nil {
		h.audit.LogFailedAction("", email, action, resource, c.ClientIP(), category)
	}
}

// ================== INSCRIPTION ==================

// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Name        string `json:"name"`
		CompanyName string `json:"companyName"`
		Email       string `json:"email"`
		Password    string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := input.Name
	if name == "" {
		name = input.CompanyName
	}

	userID, err := h.authn.RegisterUser(c.Request.Context(), input.Email, input.Password, name)
	if err != nil {
		h.logFailure(c, input.Email, "register", "users", "register_failed")
		writeError(c, err)
		return
	}

	h.logAction(c, userID, input.Email, "register", "users")
	c.JSON(http.StatusCreated, gin.H{
		"message": "Utilisateur enregistré avec succès",
		"userId":  userID,
	})
}

// ================== CONNEXION PAR IDENTIFIANTS ==================

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.authn.VerifyCredentials(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.logFailure(c, input.Email, "login", "sessions", "authentication_failed")
		writeError(c, err)
		return
	}

	token, err := h.broker.IssueToken(auth.RawAuthEvent{
		UserID:   identity.ID,
		Email:    identity.Email,
		Name:     identity.Name,
		Source:   auth.Credential{},
		Occurred: time.Now(),
	})
	if err != nil {
		log.Printf("❌ Erreur génération token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	h.setSessionCookie(c, token)
	h.logAction(c, identity.ID, identity.Email, "login", "sessions")
	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": identity.ID,
		"email":  identity.Email,
		"name":   identity.Name,
	})
}

// ================== SESSION COURANTE ==================

// GET /api/auth/session — retourne la session courante ou 401
func (h *AuthHandler) Session(c *gin.Context) {
	view, ok := h.broker.SessionFromToken(c.Request.Context(), middleware.TokenFromRequest(c))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /api/auth/logout — le token étant stateless, la déconnexion
// supprime le cookie côté client
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Déconnecté"})
}

// ================== CHANGEMENT DE MOT DE PASSE ==================

// POST /api/auth/change-password (authentifié)
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.authn.ChangePassword(c.Request.Context(), email, input.CurrentPassword, input.NewPassword)
	if err != nil {
		h.logFailure(c, email, "change_password", "users", "authentication_failed")
		writeError(c, err)
		return
	}

	h.logAction(c, c.GetString("user_id"), email, "change_password", "users")
	c.JSON(http.StatusOK, gin.H{"message": "Mot de passe changé avec succès"})
}

// ================== RÉINITIALISATION ==================

// POST /api/auth/forgot-password — la réponse est toujours la même, que
// l'email existe ou non
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genericReply := gin.H{"message": "Si cet email existe, un lien de réinitialisation a été envoyé"}

	user, err := h.users.FindByEmail(c.Request.Context(), input.Email)
	if err != nil || !user.HasPassword() {
		c.JSON(http.StatusOK, genericReply)
		return
	}

	resetToken := cache.NewRandomToken()
	if err := h.tokens.StoreResetToken(c.Request.Context(), resetToken, user.ID); err != nil {
		log.Printf("❌ Erreur sauvegarde token reset: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la génération du lien"})
		return
	}

	go func(email, name, token string) {
		if err := h.mailer.SendPasswordResetEmail(email, name, token); err != nil {
			log.Printf("❌ Erreur envoi email de réinitialisation: %v", err)
		}
	}(user.Email, user.Name, resetToken)

	h.logAction(c, user.ID, user.Email, "forgot_password", "users")
	c.JSON(http.StatusOK, genericReply)
}

// POST /api/auth/reset-password — token à usage unique, valide 1 heure
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(input.NewPassword) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le mot de passe doit contenir au moins 8 caractères"})
		return
	}

	userID, err := h.tokens.ConsumeResetToken(c.Request.Context(), input.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide ou expiré"})
		return
	}

	hash, err := auth.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la réinitialisation"})
		return
	}

	if err := h.users.UpdatePassword(c.Request.Context(), userID, hash); err != nil {
		writeError(c, err)
		return
	}

	h.logAction(c, userID, "", "reset_password", "users")
	c.JSON(http.StatusOK, gin.H{"message": "Mot de passe réinitialisé avec succès"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.SessionCookie, token, int(auth.SessionTTL.Seconds()), "/", "", false, true)
}
