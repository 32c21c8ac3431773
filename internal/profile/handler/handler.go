package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Karthikraja2345/ksmatri/internal/auth"
	"github.com/Karthikraja2345/ksmatri/internal/middleware"
	"github.com/Karthikraja2345/ksmatri/internal/profile"
)

type Handler struct {
	profiles *profile.Service
}

func NewHandler(profiles *profile.Service) *Handler {
	return &Handler{profiles: profiles}
}

// RegisterRoutes mounts the profile API on an already-authenticated
// route group.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/auth/register", h.Register)

	users := api.Group("/users")
	users.GET("/me", h.GetMe)
	users.PUT("/me", h.UpdateMe)
	users.GET("/", h.ListOthers)
	users.GET("/:id", h.GetByID)
}

// identity pulls the verified identity the auth middleware attached to
// the request context. The middleware guarantees its presence on every
// route registered here; a miss means a wiring bug, not a client error.
func identity(c *gin.Context) (*auth.Identity, bool) {
	id, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return id, ok
}
