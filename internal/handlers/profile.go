package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vendorhub_back_end/internal/models"
	"vendorhub_back_end/internal/services"
	"vendorhub_back_end/internal/store"
)

// ProfileStore : ce dont les handlers de profil ont besoin du stockage
type ProfileStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) error
	Delete(ctx context.Context, email string) (bool, error)
}

// UserDirectory résout l'user_id propriétaire d'un profil
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProfileHandler expose le profil vendeur : document complet et
// sous-documents basic-info / contact-info. Chaque écriture recalcule le
// pourcentage de complétion — il n'est jamais stocké périmé.
type ProfileHandler struct {
	profiles ProfileStore
	users    UserDirectory
	index    *services.VendorIndex
	audit    *store.AuditStore
}

func NewProfileHandler(profiles ProfileStore, users UserDirectory, index *services.VendorIndex, audit *store.AuditStore) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, users: users, index: index, audit: audit}
}

func (h *ProfileHandler) logAction(c *gin.Context, action string) {
	if h.audit != nil {
		h.audit.LogAction(c.GetString("user_id"), c.GetString("email"), action, "profiles", c.ClientIP())
	}
}

// ================== PROFIL COMPLET ==================

// GET /api/profile — le profil stocké, ou la forme vide (0%) pour les
// nouveaux vendeurs. "Pas encore de profil" n'est pas une erreur.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	email := c.GetString("email")

	profile, err := h.profiles.GetByEmail(c.Request.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		empty := models.EmptyProfile(email)
		c.JSON(http.StatusOK, gin.H{
			"basicInfo":            empty.BasicInfo,
			"contactInfo":          empty.ContactInfo,
			"completionPercentage": 0,
		})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"basicInfo":            profile.BasicInfo,
		"contactInfo":          profile.ContactInfo,
		"completionPercentage": profile.CompletionPercentage,
	})
}

// PUT /api/profile — remplace le profil entier (POST accepté en alias)
func (h *ProfileHandler) PutProfile(c *gin.Context) {
	email := c.GetString("email")

	var input struct {
		BasicInfo   *models.BasicInfo   `json:"basicInfo"`
		ContactInfo *models.ContactInfo `json:"contactInfo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.BasicInfo == nil || input.ContactInfo == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champs requis manquants"})
		return
	}

	completion, err := h.upsert(c, email, *input.BasicInfo, *input.ContactInfo)
	if err != nil {
		writeError(c, err)
		return
	}

	h.logAction(c, "profile_update")
	c.JSON(http.StatusOK, gin.H{
		"message":              "Profil mis à jour avec succès",
		"completionPercentage": completion,
	})
}

// DELETE /api/profile — idempotent : 404 si rien à supprimer, jamais
// d'erreur interne pour un profil absent
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	email := c.GetString("email")

	removed, err := h.profiles.Delete(c.Request.Context(), email)
	if err != nil {
		writeError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucun profil à supprimer"})
		return
	}

	if h.index.Enabled() {
		h.index.RemoveProfile(email)
	}
	h.logAction(c, "profile_delete")
	c.JSON(http.StatusOK, gin.H{"message": "Profil supprimé avec succès"})
}

// ================== SOUS-DOCUMENT BASIC-INFO ==================

// GET /api/profile/basic-info
func (h *ProfileHandler) GetBasicInfo(c *gin.Context) {
	email := c.GetString("email")

	profile, err := h.profiles.GetByEmail(c.Request.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"basicInfo": models.BasicInfo{}})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"basicInfo": profile.BasicInfo})
}

// PUT /api/profile/basic-info — mise à jour partielle : le contact-info
// existant est conservé et le pourcentage recalculé sur l'ensemble
func (h *ProfileHandler) PutBasicInfo(c *gin.Context) {
	email := c.GetString("email")

	var input struct {
		BasicInfo *models.BasicInfo `json:"basicInfo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.BasicInfo == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informations de base manquantes"})
		return
	}

	contactInfo := models.ContactInfo{Email: email}
	if existing, err := h.profiles.GetByEmail(c.Request.Context(), email); err == nil {
		contactInfo = existing.ContactInfo
	} else if !errors.Is(err, store.ErrNotFound) {
		writeError(c, err)
		return
	}

	completion, err := h.upsert(c, email, *input.BasicInfo, contactInfo)
	if err != nil {
		writeError(c, err)
		return
	}

	h.logAction(c, "profile_basic_info_update")
	c.JSON(http.StatusOK, gin.H{
		"message":              "Informations de base mises à jour avec succès",
		"completionPercentage": completion,
	})
}

// ================== SOUS-DOCUMENT CONTACT-INFO ==================

// GET /api/profile/contact-info
func (h *ProfileHandler) GetContactInfo(c *gin.Context) {
	email := c.GetString("email")

	profile, err := h.profiles.GetByEmail(c.Request.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"contactInfo": models.ContactInfo{Email: email}})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contactInfo": profile.ContactInfo})
}

// PUT /api/profile/contact-info — symétrique de basic-info
func (h *ProfileHandler) PutContactInfo(c *gin.Context) {
	email := c.GetString("email")

	var input struct {
		ContactInfo *models.ContactInfo `json:"contactInfo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ContactInfo == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informations de contact manquantes"})
		return
	}

	basicInfo := models.BasicInfo{}
	if existing, err := h.profiles.GetByEmail(c.Request.Context(), email); err == nil {
		basicInfo = existing.BasicInfo
	} else if !errors.Is(err, store.ErrNotFound) {
		writeError(c, err)
		return
	}

	completion, err := h.upsert(c, email, basicInfo, *input.ContactInfo)
	if err != nil {
		writeError(c, err)
		return
	}

	h.logAction(c, "profile_contact_info_update")
	c.JSON(http.StatusOK, gin.H{
		"message":              "Informations de contact mises à jour avec succès",
		"completionPercentage": completion,
	})
}

// upsert recalcule le pourcentage puis écrit le profil en un aller-retour.
// Écritures concurrentes sur le même email : la dernière gagne (politique
// assumée, voir DESIGN.md).
func (h *ProfileHandler) upsert(c *gin.Context, email string, basic models.BasicInfo, contact models.ContactInfo) (int, error) {
	user, err := h.users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		return 0, err
	}

	completion := models.CompletionPercentage(basic, contact)
	profile := &models.Profile{
		UserID:               user.ID,
		Email:                email,
		BasicInfo:            basic,
		ContactInfo:          contact,
		CompletionPercentage: completion,
	}

	if err := h.profiles.Upsert(c.Request.Context(), profile); err != nil {
		return 0, err
	}

	// Indexation annuaire best-effort — n'échoue jamais l'écriture
	if h.index.Enabled() {
		go h.index.IndexProfile(*profile)
	}

	return completion, nil
}
