package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"vendorhub_back_end/internal/store"
)

// writeError traduit la taxonomie d'erreurs en réponse HTTP.
// Les échecs d'authentification gardent leur message générique ; les
// erreurs de validation nomment le problème ; les pannes de stockage ne
// fuient jamais de détail interne au client.
func writeError(c *gin.Context, err error) {
	var storageErr *store.StorageError

	switch {
	case errors.Is(err, store.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrAuthentication):
		c.JSON(http.StatusUnauthorized, gin.H{"error": store.ErrAuthentication.Error()})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": store.ErrConflict.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Ressource introuvable"})
	case errors.As(err, &storageErr):
		log.Printf("❌ Erreur stockage (%s): %v", storageErr.Op, storageErr.Err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
	default:
		log.Printf("❌ Erreur interne: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne du serveur"})
	}
}
