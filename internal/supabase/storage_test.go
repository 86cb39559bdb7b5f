package supabase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	storage "github.com/supabase-community/storage-go"

	"project-gallery-backend/internal/models"
)

type fakeStorageAPI struct {
	bucket      string
	path        string
	data        string
	contentType string
	uploadErr   error

	removed   []string
	removeErr error
}

func (f *fakeStorageAPI) UploadFile(bucketID string, relativePath string, data io.Reader, fileOptions ...storage.FileOptions) (storage.FileUploadResponse, error) {
	f.bucket = bucketID
	f.path = relativePath
	b, _ := io.ReadAll(data)
	f.data = string(b)
	if len(fileOptions) > 0 && fileOptions[0].ContentType != nil {
		f.contentType = *fileOptions[0].ContentType
	}
	return storage.FileUploadResponse{}, f.uploadErr
}

func (f *fakeStorageAPI) RemoveFile(bucketID string, paths []string) ([]storage.FileUploadResponse, error) {
	f.bucket = bucketID
	f.removed = append(f.removed, paths...)
	return nil, f.removeErr
}

func newTestClient(api storageAPI) *StorageClient {
	return &StorageClient{
		api:     api,
		bucket:  "project-images",
		folder:  "portfolio",
		baseURL: "https://abc.supabase.co",
	}
}

func TestObjectPathFormat(t *testing.T) {
	client := newTestClient(&fakeStorageAPI{})

	objectPath := client.objectPath("Sunset.JPG", "")
	assert.True(t, strings.HasPrefix(objectPath, "portfolio/"))
	assert.True(t, strings.HasSuffix(objectPath, ".jpg"))
	assert.NotEqual(t, objectPath, client.objectPath("Sunset.JPG", ""))

	// A detected format names files that arrived without an extension.
	assert.True(t, strings.HasSuffix(client.objectPath("blob", "png"), ".png"))
}

func TestPublicURL(t *testing.T) {
	client := newTestClient(&fakeStorageAPI{})

	assert.Equal(t,
		"https://abc.supabase.co/storage/v1/render/image/public/project-images/portfolio/a.png?height=1000&resize=contain&width=1000",
		client.PublicURL("portfolio/a.png"))
}

func TestUploadImage(t *testing.T) {
	fake := &fakeStorageAPI{}
	client := newTestClient(fake)

	asset, err := client.UploadImage(context.Background(), models.ImageUpload{
		Filename:    "valid.webp",
		ContentType: "image/webp",
		Body:        strings.NewReader("webp-bytes"),
	})
	require.NoError(t, err)

	assert.Equal(t, "project-images", fake.bucket)
	assert.Equal(t, fake.path, asset.PublicID)
	assert.Equal(t, "webp-bytes", fake.data)
	assert.Equal(t, "image/webp", fake.contentType)
	assert.Equal(t, client.PublicURL(fake.path), asset.URL)
}

func TestUploadImage_Error(t *testing.T) {
	client := newTestClient(&fakeStorageAPI{uploadErr: errors.New("bucket not found")})

	_, err := client.UploadImage(context.Background(), models.ImageUpload{Filename: "a.jpg", Body: strings.NewReader("x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket not found")
}

func TestUploadImage_CanceledContext(t *testing.T) {
	fake := &fakeStorageAPI{}
	client := newTestClient(fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.UploadImage(ctx, models.ImageUpload{Filename: "a.jpg", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fake.path)
}

func TestDeleteImage(t *testing.T) {
	fake := &fakeStorageAPI{}
	client := newTestClient(fake)

	require.NoError(t, client.DeleteImage(context.Background(), "portfolio/a.jpg"))
	assert.Equal(t, []string{"portfolio/a.jpg"}, fake.removed)

	fake.removeErr = errors.New("forbidden")
	assert.Error(t, client.DeleteImage(context.Background(), "portfolio/a.jpg"))
}
