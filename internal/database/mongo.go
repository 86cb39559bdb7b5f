package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/connstring"

	"project-gallery-backend/internal/models"
)

const projectsCollection = "projects"

type projectDocument struct {
	ID        bson.ObjectID `bson:"_id"`
	Title     string        `bson:"title"`
	Category  string        `bson:"category"`
	ImageURL  string        `bson:"imageUrl"`
	PublicID  string        `bson:"publicId,omitempty"`
	CreatedAt time.Time     `bson:"createdAt"`
}

func (d projectDocument) toModel() models.Project {
	return models.Project{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Category:  d.Category,
		ImageURL:  d.ImageURL,
		PublicID:  d.PublicID,
		CreatedAt: d.CreatedAt,
	}
}

// MongoStore keeps project records in a MongoDB collection.
type MongoStore struct {
	client   *mongo.Client
	projects *mongo.Collection
}

// NewMongoStore connects to uri. The database named in the uri path wins over
// defaultDatabase.
func NewMongoStore(ctx context.Context, uri, defaultDatabase string) (*MongoStore, error) {
	dbName, err := mongoDatabaseName(uri, defaultDatabase)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoStore{
		client:   client,
		projects: client.Database(dbName).Collection(projectsCollection),
	}, nil
}

func mongoDatabaseName(uri, defaultDatabase string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("invalid mongodb connection string: %w", err)
	}
	if cs.Database != "" {
		return cs.Database, nil
	}
	return defaultDatabase, nil
}

// listSort orders projects newest first, breaking ties on the id.
func listSort() bson.D {
	return bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
}

// EnsureIndexes creates the index backing the newest-first listing.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.projects.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: listSort(),
	})
	if err != nil {
		return fmt.Errorf("failed to create projects index: %w", err)
	}
	return nil
}

func (s *MongoStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	opts := options.Find().SetSort(listSort())
	cursor, err := s.projects.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	var docs []projectDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}

	projects := make([]models.Project, len(docs))
	for i, doc := range docs {
		projects[i] = doc.toModel()
	}
	return projects, nil
}

func (s *MongoStore) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	if err := project.Validate(); err != nil {
		return nil, fmt.Errorf("project validation failed: %w", err)
	}

	doc := projectDocument{
		ID:        bson.NewObjectID(),
		Title:     project.Title,
		Category:  project.Category,
		ImageURL:  project.ImageURL,
		PublicID:  project.PublicID,
		CreatedAt: project.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	// BSON dates carry millisecond precision
	doc.CreatedAt = doc.CreatedAt.Truncate(time.Millisecond)

	if _, err := s.projects.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	created := doc.toModel()
	return &created, nil
}

func (s *MongoStore) FindProject(ctx context.Context, id string) (*models.Project, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc projectDocument
	err = s.projects.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project := doc.toModel()
	return &project, nil
}

func (s *MongoStore) DeleteProject(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := s.projects.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func parseObjectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: %q is not a valid ObjectId", ErrInvalidProjectID, id)
	}
	return oid, nil
}
