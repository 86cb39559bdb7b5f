package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"project-gallery-backend/internal/database"
	"project-gallery-backend/internal/models"
	"project-gallery-backend/internal/services"
)

const (
	msgProjectNotFound = "Project not found"
	msgProjectDeleted  = "Project deleted successfully"
)

type ProjectsHandler struct {
	projects *services.ProjectService
}

func NewProjectsHandler(projects *services.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{
		projects: projects,
	}
}

// ListProjects godoc
// @Summary     List projects
// @Description Returns every project, newest first
// @Tags        projects
// @Produce     json
// @Success     200 {array}  models.Project
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects [get]
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	projects, err := h.projects.ListProjects(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// DeleteProject godoc
// @Summary     Delete a project
// @Description Removes the project image from the asset store, then the record
// @Tags        projects
// @Produce     json
// @Param       id  path     string true "Project ID"
// @Success     200 {object} models.MessageResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{id} [delete]
func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	if err := h.projects.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: msgProjectDeleted})
}

// respondError maps service and store errors onto status codes. Downstream
// error text is passed through to the client unchanged.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, services.ErrMissingImage),
		errors.Is(err, services.ErrUnsupportedImageFormat):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, database.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: msgProjectNotFound})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
	}
}
