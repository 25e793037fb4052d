package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vendorhub_back_end/internal/services"
)

// SearchHandler : annuaire vendeurs (Elasticsearch)
type SearchHandler struct {
	index *services.VendorIndex
}

func NewSearchHandler(index *services.VendorIndex) *SearchHandler {
	return &SearchHandler{index: index}
}

// GET /api/vendors/search?q=...
func (h *SearchHandler) SearchVendors(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre 'q' manquant"})
		return
	}

	if !h.index.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Recherche vendeurs indisponible"})
		return
	}

	results, err := h.index.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}
