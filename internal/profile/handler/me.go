package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Karthikraja2345/ksmatri/internal/logger"
	"github.com/Karthikraja2345/ksmatri/internal/profile"
)

// GetMe returns the caller's own profile. A verified identity without a
// bound profile is a distinguishable state and reported as 404.
func (h *Handler) GetMe(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	p, err := h.profiles.Self(c.Request.Context(), ident)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		logger.Error("self fetch failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error fetching profile"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateMe applies the allow-listed field changes to the caller's own
// profile. Any other field in the body is dropped silently.
func (h *Handler) UpdateMe(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var in profile.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.profiles.UpdateSelf(c.Request.Context(), ident, in)
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		case errors.Is(err, profile.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("profile update failed", map[string]any{"error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error during profile update"})
		}
		return
	}

	c.JSON(http.StatusOK, p)
}
