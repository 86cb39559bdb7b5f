package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"project-gallery-backend/internal/models"
)

//go:embed schema/projects.sql
var schemaFS embed.FS

const listProjectsQuery = `
	SELECT id, title, category, image_url, public_id, created_at
	FROM projects
	ORDER BY created_at DESC, id DESC
`

// PostgresStore keeps project records in a PostgreSQL table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(ctx context.Context, connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// EnsureSchema creates the projects table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	schemaSQL, err := schemaFS.ReadFile("schema/projects.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := tx.ExecContext(ctx, string(schemaSQL)); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, listProjectsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

func (s *PostgresStore) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	if err := project.Validate(); err != nil {
		return nil, fmt.Errorf("project validation failed: %w", err)
	}

	createdAt := project.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var publicID sql.NullString
	if project.PublicID != "" {
		publicID = sql.NullString{String: project.PublicID, Valid: true}
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO projects (id, title, category, image_url, public_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, category, image_url, public_id, created_at
	`, uuid.New(), project.Title, project.Category, project.ImageURL, publicID, createdAt)

	created, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) FindProject(ctx context.Context, id string) (*models.Project, error) {
	projectID, err := parseUUID(id)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, category, image_url, public_id, created_at
		FROM projects
		WHERE id = $1
	`, projectID)

	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

func (s *PostgresStore) DeleteProject(ctx context.Context, id string) error {
	projectID, err := parseUUID(id)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if affected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (s *PostgresStore) Close(context.Context) error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		project  models.Project
		id       uuid.UUID
		publicID sql.NullString
	)
	if err := row.Scan(&id, &project.Title, &project.Category, &project.ImageURL, &publicID, &project.CreatedAt); err != nil {
		return nil, err
	}
	project.ID = id.String()
	project.PublicID = publicID.String
	project.CreatedAt = project.CreatedAt.UTC()
	return &project, nil
}

func parseUUID(id string) (uuid.UUID, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q is not a valid UUID", ErrInvalidProjectID, id)
	}
	return projectID, nil
}
