package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Karthikraja2345/ksmatri/internal/logger"
	"github.com/Karthikraja2345/ksmatri/internal/profile"
)

// ListOthers returns every profile except the caller's own. An empty
// roster is a normal response, not an error.
func (h *Handler) ListOthers(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	profiles, err := h.profiles.Roster(c.Request.Context(), ident)
	if err != nil {
		logger.Error("roster fetch failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error fetching profiles"})
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// GetByID returns a single profile by record id. Malformed ids are
// rejected before the store is contacted.
func (h *Handler) GetByID(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	p, err := h.profiles.ByID(c.Request.Context(), ident, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id format"})
		case errors.Is(err, profile.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		default:
			logger.Error("profile fetch failed", map[string]any{"error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error fetching profile"})
		}
		return
	}

	c.JSON(http.StatusOK, p)
}
