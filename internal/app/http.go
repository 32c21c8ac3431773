package app

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Karthikraja2345/ksmatri/internal/auth/verifier"
	"github.com/Karthikraja2345/ksmatri/internal/auth/verifier/hmac"
	"github.com/Karthikraja2345/ksmatri/internal/auth/verifier/oidc"
	"github.com/Karthikraja2345/ksmatri/internal/config"
	"github.com/Karthikraja2345/ksmatri/internal/middleware"
	"github.com/Karthikraja2345/ksmatri/internal/profile"
	"github.com/Karthikraja2345/ksmatri/internal/profile/handler"
	"github.com/Karthikraja2345/ksmatri/internal/profile/mongostore"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	store := mongostore.New(infra.Mongo.Database)
	if err := store.EnsureIndexes(ctx); err != nil {
		return nil, nil, err
	}

	var cache *profile.Cache
	if infra.Redis != nil {
		cache = profile.NewCache(infra.Redis.Client, cfg.CacheTTL)
	}

	registry, err := setupVerifiers(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	active, err := registry.Get(cfg.AuthVerifier)
	if err != nil {
		return nil, nil, err
	}

	profileService := profile.NewService(store, cache)
	profileHandler := handler.NewHandler(profileService)
	authMiddleware := middleware.NewAuthMiddleware(active)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}))

	// ----------------------------
	// Public Routes
	// ----------------------------

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth(authMiddleware))

	profileHandler.RegisterRoutes(api)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		return infra.Mongo.Close()
	}, nil
}

// setupVerifiers builds every verifier the configuration allows. The
// active one is selected by name afterwards, so a dev box can carry
// both an hmac secret and an OIDC issuer and switch without rewiring.
func setupVerifiers(ctx context.Context, cfg config.Config) (*verifier.Registry, error) {
	var list []verifier.Verifier

	if cfg.OIDCIssuer != "" {
		v, err := oidc.New(ctx, cfg.OIDCIssuer, cfg.OIDCAudience)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}

	if cfg.HMACSecret != "" {
		v, err := hmac.New(cfg.HMACSecret)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}

	return verifier.NewRegistry(list...), nil
}
