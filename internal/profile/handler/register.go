package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Karthikraja2345/ksmatri/internal/logger"
	"github.com/Karthikraja2345/ksmatri/internal/profile"
)

// Register creates the profile bound to the verified identity. It runs
// after the identity provider has authenticated the user; its job is to
// create the matching record in our store, exactly once.
func (h *Handler) Register(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var in profile.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.profiles.Register(c.Request.Context(), ident, in)
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrAlreadyExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "profile already exists"})
		case errors.Is(err, profile.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("profile creation failed", map[string]any{
				"error": err.Error(),
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error during profile creation"})
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}
