package handlers

import (
	"net/http"

	"carebook/services/directory"
	"carebook/utils"

	"github.com/gin-gonic/gin"
)

// ProviderHandler serves the provider directory to the widget.
type ProviderHandler struct {
	Directory directory.DirectoryService
}

// NewProviderHandler returns a handler bound to the directory service.
func NewProviderHandler(dir directory.DirectoryService) *ProviderHandler {
	return &ProviderHandler{Directory: dir}
}

// ListProvidersHandler returns all active providers.
func (h *ProviderHandler) ListProvidersHandler(c *gin.Context) {
	providers, err := h.Directory.ListProviders(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "provider directory unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// GetProviderHandler returns a single provider by slug.
func (h *ProviderHandler) GetProviderHandler(c *gin.Context) {
	provider, err := h.Directory.GetProviderBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "provider directory unavailable", err.Error())
		return
	}
	if provider == nil {
		utils.JSONError(c, http.StatusNotFound, "provider not found", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": provider})
}
