package handlers

import (
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"project-gallery-backend/internal/middleware"
	"project-gallery-backend/internal/services"
)

// NewRouter wires the API routes, the cross-origin policy and the static
// asset fallback. Directories under staticDir are never listed.
func NewRouter(projects *services.ProjectService, staticDir string, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
	router.Use(static.Serve("/", static.LocalFile(staticDir, false)))

	projectsHandler := NewProjectsHandler(projects)
	uploadHandler := NewUploadHandler(projects)

	api := router.Group("/api")
	api.GET("/projects", projectsHandler.ListProjects)
	api.POST("/upload", uploadHandler.Upload)
	api.DELETE("/projects/:id", projectsHandler.DeleteProject)

	return router
}
