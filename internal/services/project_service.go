package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"project-gallery-backend/internal/models"
)

var (
	ErrMissingImage           = errors.New("no image file provided")
	ErrUnsupportedImageFormat = errors.New("unsupported image format, allowed formats: jpg, png, jpeg, webp")
)

// sniffLen is how much of the body content detection looks at.
const sniffLen = 3072

var allowedImageFormats = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"webp": true,
}

// RecordStore persists project metadata.
type RecordStore interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, project *models.Project) (*models.Project, error)
	FindProject(ctx context.Context, id string) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// AssetStore keeps the image bytes for projects.
type AssetStore interface {
	UploadImage(ctx context.Context, image models.ImageUpload) (*models.StoredAsset, error)
	DeleteImage(ctx context.Context, publicID string) error
}

type ProjectService struct {
	records RecordStore
	assets  AssetStore
	logger  *zap.Logger
	now     func() time.Time
}

func NewProjectService(records RecordStore, assets AssetStore, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		records: records,
		assets:  assets,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.records.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// CreateProject uploads the image and then saves the record pointing at it.
// When the save fails the uploaded image is removed again on a best-effort
// basis; the save error is what the caller sees.
func (s *ProjectService) CreateProject(ctx context.Context, req models.CreateProjectRequest, image *models.ImageUpload) (*models.Project, error) {
	if image == nil || image.Body == nil {
		return nil, ErrMissingImage
	}
	if err := checkImageFormat(image); err != nil {
		return nil, err
	}

	asset, err := s.assets.UploadImage(ctx, *image)
	if err != nil {
		return nil, err
	}

	project, err := s.records.CreateProject(ctx, &models.Project{
		Title:     req.Title,
		Category:  req.Category,
		ImageURL:  asset.URL,
		PublicID:  asset.PublicID,
		CreatedAt: s.now(),
	})
	if err != nil {
		if asset.PublicID != "" {
			if cleanupErr := s.assets.DeleteImage(ctx, asset.PublicID); cleanupErr != nil {
				s.logger.Warn("failed to remove orphaned image",
					zap.String("public_id", asset.PublicID),
					zap.Error(cleanupErr))
			}
		}
		return nil, err
	}

	s.logger.Info("project created",
		zap.String("project_id", project.ID),
		zap.String("public_id", project.PublicID))
	return project, nil
}

// DeleteProject removes the remote image first and the record second. A
// failed image delete leaves the record in place.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	project, err := s.records.FindProject(ctx, id)
	if err != nil {
		return err
	}

	if project.PublicID != "" {
		if err := s.assets.DeleteImage(ctx, project.PublicID); err != nil {
			return err
		}
	}

	if err := s.records.DeleteProject(ctx, project.ID); err != nil {
		return err
	}

	s.logger.Info("project deleted", zap.String("project_id", project.ID))
	return nil
}

// ImageFormat derives the image format from the file extension, falling back
// to the content type, and reports whether it is accepted.
func ImageFormat(filename, contentType string) (string, bool) {
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."); ext != "" {
		return ext, allowedImageFormats[ext]
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}
	format, ok := strings.CutPrefix(mediaType, "image/")
	if !ok {
		return "", false
	}
	return format, allowedImageFormats[format]
}

// checkImageFormat accepts the upload when its name or declared type names an
// allowed format. Otherwise the leading bytes decide, which covers clients
// that send extensionless files as application/octet-stream. The sniffed
// bytes are stitched back in front of the body.
func checkImageFormat(image *models.ImageUpload) error {
	if format, ok := ImageFormat(image.Filename, image.ContentType); ok {
		image.Format = format
		return nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(image.Body, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	head = head[:n]
	image.Body = io.MultiReader(bytes.NewReader(head), image.Body)

	detected := mimetype.Detect(head)
	format := strings.TrimPrefix(detected.Extension(), ".")
	if !allowedImageFormats[format] {
		return ErrUnsupportedImageFormat
	}
	image.Format = format
	image.ContentType = detected.String()
	return nil
}
