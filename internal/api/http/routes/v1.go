package routes

import (
	"github.com/gin-gonic/gin"

	httpapi "github.com/portfolio-hub/portfolio-backend/internal/api/http"
	"github.com/portfolio-hub/portfolio-backend/internal/auth"
	authhttp "github.com/portfolio-hub/portfolio-backend/internal/auth/http"
	authmw "github.com/portfolio-hub/portfolio-backend/internal/auth/middleware"
	authservice "github.com/portfolio-hub/portfolio-backend/internal/auth/service"
	"github.com/portfolio-hub/portfolio-backend/internal/docstore"
	msghttp "github.com/portfolio-hub/portfolio-backend/internal/messages/http"
	msgservice "github.com/portfolio-hub/portfolio-backend/internal/messages/service"
	projecthttp "github.com/portfolio-hub/portfolio-backend/internal/projects/http"
	projectservice "github.com/portfolio-hub/portfolio-backend/internal/projects/service"
)

type APIDeps struct {
	Store             docstore.Store
	AdminEmail        string
	AdminPasswordHash string
	Tokens            *auth.TokenService
	Firebase          auth.IDTokenVerifier
}

// RegisterAPI mounts every /api route on r.
func RegisterAPI(r *gin.Engine, dep APIDeps) {
	api := r.Group("/api")

	admin := authmw.RequireAdmin(authmw.AdminOptions{
		Tokens:     dep.Tokens,
		Firebase:   dep.Firebase,
		AdminEmail: dep.AdminEmail,
	})

	authSvc := authservice.NewAuthService(dep.AdminEmail, dep.AdminPasswordHash, dep.Tokens)
	authhttp.New(authSvc).Register(api)

	messageSvc := msgservice.NewFromStore(dep.Store)
	msghttp.New(messageSvc).Register(api, admin)

	projectSvc := projectservice.NewFromStore(dep.Store)
	projecthttp.New(projectSvc).Register(api, admin)

	httpapi.NewStatsHandler(messageSvc, projectSvc).Register(api, admin)
}
