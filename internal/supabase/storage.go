package supabase

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"

	"project-gallery-backend/internal/models"
)

// maxImageSide bounds the rendered image in both directions.
const maxImageSide = 1000

type storageAPI interface {
	UploadFile(bucketID string, relativePath string, data io.Reader, fileOptions ...storage.FileOptions) (storage.FileUploadResponse, error)
	RemoveFile(bucketID string, paths []string) ([]storage.FileUploadResponse, error)
}

// StorageClient stores project images as objects in a Supabase bucket. The
// object path doubles as the public id.
type StorageClient struct {
	api     storageAPI
	bucket  string
	folder  string
	baseURL string
}

func (s *StorageClient) objectPath(filename, format string) string {
	ext := strings.ToLower(path.Ext(filename))
	if format != "" {
		ext = "." + format
	}
	return fmt.Sprintf("%s/%s%s", s.folder, uuid.NewString(), ext)
}

// PublicURL returns the render endpoint for an object.
func (s *StorageClient) PublicURL(objectPath string) string {
	query := url.Values{}
	query.Set("width", fmt.Sprint(maxImageSide))
	query.Set("height", fmt.Sprint(maxImageSide))
	query.Set("resize", "contain")
	return fmt.Sprintf("%s/storage/v1/render/image/public/%s/%s?%s",
		s.baseURL, s.bucket, objectPath, query.Encode())
}

// The storage-go client has no context support; ctx is checked up front only.
func (s *StorageClient) UploadImage(ctx context.Context, image models.ImageUpload) (*models.StoredAsset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	objectPath := s.objectPath(image.Filename, image.Format)
	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	upsert := false
	_, err := s.api.UploadFile(s.bucket, objectPath, image.Body, storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return &models.StoredAsset{
		URL:      s.PublicURL(objectPath),
		PublicID: objectPath,
	}, nil
}

func (s *StorageClient) DeleteImage(ctx context.Context, publicID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.api.RemoveFile(s.bucket, []string{publicID}); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
