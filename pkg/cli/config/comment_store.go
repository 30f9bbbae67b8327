package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/interfaces"
	"github.com/secmon-lab/covidash/pkg/repository"
	"github.com/urfave/cli/v3"
)

const (
	StoreMemory    = "memory"
	StoreFirestore = "firestore"
	StoreMongo     = "mongo"
)

// CommentStore holds configuration of the comment document store
type CommentStore struct {
	Backend string

	FirestoreProjectID  string
	FirestoreDatabaseID string
	FirestoreCollection string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Flags returns CLI flags for CommentStore configuration
func (c *CommentStore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "comment-store",
			Usage:       "Comment store backend (memory, firestore, mongo). Empty selects by the settings present",
			Category:    "Comment store",
			Sources:     cli.EnvVars("COVIDASH_COMMENT_STORE"),
			Destination: &c.Backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore project ID",
			Category:    "Comment store",
			Sources:     cli.EnvVars("COVIDASH_FIRESTORE_PROJECT_ID"),
			Destination: &c.FirestoreProjectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Category:    "Comment store",
			Value:       "(default)",
			Sources:     cli.EnvVars("COVIDASH_FIRESTORE_DATABASE_ID"),
			Destination: &c.FirestoreDatabaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection",
			Usage:       "Firestore collection of comment documents",
			Category:    "Comment store",
			Value:       repository.DefaultCommentsCollection,
			Sources:     cli.EnvVars("COVIDASH_FIRESTORE_COLLECTION"),
			Destination: &c.FirestoreCollection,
		},
		&cli.StringFlag{
			Name:        "mongo-uri",
			Usage:       "MongoDB connection URI",
			Category:    "Comment store",
			Sources:     cli.EnvVars("COVIDASH_MONGO_URI"),
			Destination: &c.MongoURI,
		},
		&cli.StringFlag{
			Name:        "mongo-database",
			Usage:       "MongoDB database",
			Category:    "Comment store",
			Value:       "covidash",
			Sources:     cli.EnvVars("COVIDASH_MONGO_DATABASE"),
			Destination: &c.MongoDatabase,
		},
		&cli.StringFlag{
			Name:        "mongo-collection",
			Usage:       "MongoDB collection of comment documents",
			Category:    "Comment store",
			Value:       repository.DefaultCommentsCollection,
			Sources:     cli.EnvVars("COVIDASH_MONGO_COLLECTION"),
			Destination: &c.MongoCollection,
		},
	}
}

// SelectedBackend resolves the backend name. An explicit backend wins; otherwise Firestore
// or Mongo is chosen when its settings are present, and memory is the fallback.
func (c *CommentStore) SelectedBackend() string {
	switch {
	case c.Backend != "":
		return c.Backend
	case c.FirestoreProjectID != "":
		return StoreFirestore
	case c.MongoURI != "":
		return StoreMongo
	default:
		return StoreMemory
	}
}

// Configure creates the comment repository
func (c *CommentStore) Configure(ctx context.Context) (interfaces.CommentRepository, error) {
	logger := ctxlog.From(ctx)

	switch backend := c.SelectedBackend(); backend {
	case StoreMemory:
		logger.Warn("Comment store is not configured, using in-memory store. Comments are lost on shutdown")
		return repository.NewMemory(), nil

	case StoreFirestore:
		if c.FirestoreProjectID == "" {
			return nil, goerr.New("firestore project ID is required")
		}
		repo, err := repository.NewFirestore(ctx, c.FirestoreProjectID, c.FirestoreDatabaseID, c.FirestoreCollection)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create firestore repository")
		}
		return repo, nil

	case StoreMongo:
		if c.MongoURI == "" {
			return nil, goerr.New("mongo URI is required")
		}
		repo, err := repository.NewMongo(ctx, c.MongoURI, c.MongoDatabase, c.MongoCollection)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create mongo repository")
		}
		return repo, nil

	default:
		return nil, goerr.New("unsupported comment store", goerr.V("backend", backend))
	}
}

// LogValue returns structured log value
func (c CommentStore) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", c.SelectedBackend()),
		slog.String("firestore_project_id", c.FirestoreProjectID),
		slog.String("firestore_database_id", c.FirestoreDatabaseID),
		slog.String("firestore_collection", c.FirestoreCollection),
		slog.Bool("has_mongo_uri", c.MongoURI != ""),
		slog.String("mongo_database", c.MongoDatabase),
		slog.String("mongo_collection", c.MongoCollection),
	)
}
