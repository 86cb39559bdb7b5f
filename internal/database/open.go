package database

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"project-gallery-backend/internal/models"
)

// Store is a connected record store backend.
type Store interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, project *models.Project) (*models.Project, error)
	FindProject(ctx context.Context, id string) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error
	Close(ctx context.Context) error
}

const (
	backendMongo    = "mongodb"
	backendPostgres = "postgres"
)

func backendFor(connectionString string) (string, error) {
	scheme, _, ok := strings.Cut(connectionString, "://")
	if !ok {
		return "", fmt.Errorf("database url has no scheme")
	}
	switch strings.ToLower(scheme) {
	case "mongodb", "mongodb+srv":
		return backendMongo, nil
	case "postgres", "postgresql":
		return backendPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database scheme %q", scheme)
	}
}

// Open connects to the backend named by the connection string scheme and
// prepares its collection or table.
func Open(ctx context.Context, connectionString, defaultDatabase string, logger *zap.Logger) (Store, error) {
	backend, err := backendFor(connectionString)
	if err != nil {
		return nil, err
	}

	switch backend {
	case backendPostgres:
		store, err := NewPostgresStore(ctx, connectionString)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close(ctx)
			return nil, err
		}
		logger.Info("connected to record store", zap.String("backend", backend))
		return store, nil
	default:
		store, err := NewMongoStore(ctx, connectionString, defaultDatabase)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureIndexes(ctx); err != nil {
			// Listing still works without the index
			logger.Warn("failed to ensure indexes", zap.Error(err))
		}
		logger.Info("connected to record store", zap.String("backend", backend))
		return store, nil
	}
}
