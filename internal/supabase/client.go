package supabase

import (
	"fmt"
	"strings"

	"github.com/supabase-community/supabase-go"
)

// NewStorageClient builds a project-scoped Supabase client and returns the
// asset store backed by its storage API.
func NewStorageClient(supabaseURL, serviceKey, bucket, folder string) (*StorageClient, error) {
	baseURL := strings.TrimRight(supabaseURL, "/")

	client, err := supabase.NewClient(baseURL, serviceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &StorageClient{
		api:     client.Storage,
		bucket:  bucket,
		folder:  folder,
		baseURL: baseURL,
	}, nil
}
