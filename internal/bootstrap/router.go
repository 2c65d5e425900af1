package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/portfolio-hub/portfolio-backend/internal/api/http"
	"github.com/portfolio-hub/portfolio-backend/internal/api/http/middleware"
	"github.com/portfolio-hub/portfolio-backend/internal/api/http/response"
	"github.com/portfolio-hub/portfolio-backend/internal/api/http/routes"
	"github.com/portfolio-hub/portfolio-backend/internal/auth"
	"github.com/portfolio-hub/portfolio-backend/internal/docstore"
)

type RouterDeps struct {
	ServiceName       string
	Version           string
	Store             docstore.Store
	Logger            *zap.Logger
	AllowedOrigins    []string
	AdminEmail        string
	AdminPasswordHash string
	Tokens            *auth.TokenService
	Firebase          auth.IDTokenVerifier
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store)
	healthHandler.RegisterRoutes(r)

	routes.RegisterAPI(r, routes.APIDeps{
		Store:             dep.Store,
		AdminEmail:        dep.AdminEmail,
		AdminPasswordHash: dep.AdminPasswordHash,
		Tokens:            dep.Tokens,
		Firebase:          dep.Firebase,
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID, response.DegradedHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
