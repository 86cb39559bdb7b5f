package models

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Project is the persisted metadata for one gallery entry. The image bytes
// live in the remote asset store; only their URL and identifier are kept here.
type Project struct {
	ID        string    `json:"id"`
	Title     string    `json:"title" validate:"required"`
	Category  string    `json:"category" validate:"required"`
	ImageURL  string    `json:"imageUrl" validate:"required"`
	PublicID  string    `json:"publicId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate enforces the required fields of a project record.
func (p *Project) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		if fe.Tag() == "required" {
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// ImageUpload is an inbound image file on its way to the asset store.
type ImageUpload struct {
	Filename    string
	ContentType string
	// Format is the accepted image format, filled in once the file is checked.
	Format string
	Size   int64
	Body   io.Reader
	// Header is the original multipart part, when the upload came from a form.
	Header *multipart.FileHeader
}

// StoredAsset is what the asset store hands back after an upload.
type StoredAsset struct {
	URL      string
	PublicID string
}
