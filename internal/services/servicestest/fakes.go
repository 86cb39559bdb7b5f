// Package servicestest provides in-memory doubles for the project service
// dependencies.
package servicestest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"project-gallery-backend/internal/database"
	"project-gallery-backend/internal/models"
)

// RecordStore is an in-memory services.RecordStore.
type RecordStore struct {
	mu       sync.Mutex
	projects map[string]models.Project
	nextID   int

	ListErr   error
	CreateErr error
	FindErr   error
	DeleteErr error

	DeleteCalls []string
}

func NewRecordStore() *RecordStore {
	return &RecordStore{projects: make(map[string]models.Project)}
}

func (s *RecordStore) ListProjects(context.Context) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}

	projects := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool {
		if !projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].CreatedAt.After(projects[j].CreatedAt)
		}
		return projects[i].ID > projects[j].ID
	})
	return projects, nil
}

func (s *RecordStore) CreateProject(_ context.Context, project *models.Project) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	if err := project.Validate(); err != nil {
		return nil, fmt.Errorf("project validation failed: %w", err)
	}

	s.nextID++
	created := *project
	created.ID = fmt.Sprintf("%024x", s.nextID)
	s.projects[created.ID] = created
	return &created, nil
}

func (s *RecordStore) FindProject(_ context.Context, id string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FindErr != nil {
		return nil, s.FindErr
	}

	project, ok := s.projects[id]
	if !ok {
		return nil, database.ErrProjectNotFound
	}
	return &project, nil
}

func (s *RecordStore) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeleteCalls = append(s.DeleteCalls, id)
	if s.DeleteErr != nil {
		return s.DeleteErr
	}

	if _, ok := s.projects[id]; !ok {
		return database.ErrProjectNotFound
	}
	delete(s.projects, id)
	return nil
}

// Len returns the number of stored projects.
func (s *RecordStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.projects)
}

// Put stores a project as-is, bypassing validation.
func (s *RecordStore) Put(project models.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project.ID] = project
}

// AssetStore is a services.AssetStore that records every call.
type AssetStore struct {
	mu sync.Mutex

	UploadErr error
	DeleteErr error

	Uploads []models.ImageUpload
	Deletes []string
	uploads int
}

func (a *AssetStore) UploadImage(_ context.Context, image models.ImageUpload) (*models.StoredAsset, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Uploads = append(a.Uploads, image)
	if a.UploadErr != nil {
		return nil, a.UploadErr
	}

	a.uploads++
	publicID := fmt.Sprintf("portfolio/image-%d", a.uploads)
	return &models.StoredAsset{
		URL:      "https://cdn.example.com/" + publicID + ".jpg",
		PublicID: publicID,
	}, nil
}

func (a *AssetStore) DeleteImage(_ context.Context, publicID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Deletes = append(a.Deletes, publicID)
	return a.DeleteErr
}
