package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"project-gallery-backend/internal/models"
	"project-gallery-backend/internal/services"
)

const imageField = "image"

type UploadHandler struct {
	projects *services.ProjectService
}

func NewUploadHandler(projects *services.ProjectService) *UploadHandler {
	return &UploadHandler{
		projects: projects,
	}
}

// Upload godoc
// @Summary     Create a project
// @Description Uploads the image to the asset store, then saves the project
// @Description record that points at it.
// @Tags        upload
// @Accept      multipart/form-data
// @Produce     json
// @Param       image    formData file   true "Project image (jpg, jpeg, png, webp)"
// @Param       title    formData string true "Project title"
// @Param       category formData string true "Project category"
// @Success     201 {object} models.Project
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile(imageField)
	if err != nil {
		respondError(c, services.ErrMissingImage)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer src.Close()

	req := models.CreateProjectRequest{
		Title:    c.PostForm("title"),
		Category: c.PostForm("category"),
	}
	image := &models.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        src,
		Header:      fileHeader,
	}

	project, err := h.projects.CreateProject(c.Request.Context(), req, image)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}
