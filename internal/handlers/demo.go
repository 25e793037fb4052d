package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DemoStore : drapeau global des données d'exemple
type DemoStore interface {
	Get(ctx context.Context) (bool, error)
	Set(ctx context.Context, visible bool) error
	Toggle(ctx context.Context) (bool, error)
}

// DemoHandler expose le drapeau singleton contrôlant l'affichage des
// données d'exemple
type DemoHandler struct {
	demo DemoStore
}

func NewDemoHandler(demo DemoStore) *DemoHandler {
	return &DemoHandler{demo: demo}
}

// GET /api/demo
func (h *DemoHandler) Get(c *gin.Context) {
	visible, err := h.demo.Get(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visible": visible})
}

// PUT /api/demo — fixe l'état explicitement
func (h *DemoHandler) Set(c *gin.Context) {
	var input struct {
		Visible *bool `json:"visible"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Visible == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valeur 'visible' invalide"})
		return
	}

	if err := h.demo.Set(c.Request.Context(), *input.Visible); err != nil {
		writeError(c, err)
		return
	}

	message := "Données d'exemple désactivées"
	if *input.Visible {
		message = "Données d'exemple activées"
	}
	c.JSON(http.StatusOK, gin.H{"visible": *input.Visible, "message": message})
}

// POST /api/demo — inverse l'état
func (h *DemoHandler) Toggle(c *gin.Context) {
	visible, err := h.demo.Toggle(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visible": visible})
}
