package cloudinary

import (
	"context"
	"fmt"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"project-gallery-backend/internal/models"
)

// AllowedFormats lists the image formats Cloudinary accepts for projects.
var AllowedFormats = []string{"jpg", "png", "jpeg", "webp"}

// limitTransformation caps the longest side at 1000px without upscaling.
const limitTransformation = "c_limit,w_1000,h_1000"

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// Client stores project images in a Cloudinary folder.
type Client struct {
	upload uploadAPI
	folder string
}

func NewClient(cloudName, apiKey, apiSecret, folder string) (*Client, error) {
	c, err := cld.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return &Client{upload: &c.Upload, folder: folder}, nil
}

func (c *Client) uploadParams() uploader.UploadParams {
	return uploader.UploadParams{
		Folder:         c.folder,
		AllowedFormats: api.CldAPIArray(AllowedFormats),
		Transformation: limitTransformation,
	}
}

// UploadImage hands the multipart part to the SDK when there is one, so the
// SDK knows the size and can switch to chunked uploads for large files.
func (c *Client) UploadImage(ctx context.Context, image models.ImageUpload) (*models.StoredAsset, error) {
	var file interface{} = image.Body
	if image.Header != nil {
		file = image.Header
	}

	result, err := c.upload.Upload(ctx, file, c.uploadParams())
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("failed to upload image: %s", result.Error.Message)
	}

	url := result.SecureURL
	if url == "" {
		url = result.URL
	}
	return &models.StoredAsset{URL: url, PublicID: result.PublicID}, nil
}

// DeleteImage destroys the asset. A "not found" result is not an error.
func (c *Client) DeleteImage(ctx context.Context, publicID string) error {
	result, err := c.upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("failed to delete image: %s", result.Error.Message)
	}
	return nil
}
