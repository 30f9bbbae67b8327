package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/interfaces"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// DefaultCommentsCollection is the collection comment documents are appended to
	DefaultCommentsCollection = "supplementary_data"

	// Field names
	fieldDataPointID = "data_point_id"
)

// Firestore implements CommentRepository with Firestore
type Firestore struct {
	client     *firestore.Client
	collection string
}

// NewFirestore creates a new Firestore repository
func NewFirestore(ctx context.Context, projectID, databaseID, collection string) (*Firestore, error) {
	logger := ctxlog.From(ctx)

	if collection == "" {
		collection = DefaultCommentsCollection
	}

	// Create client with database ID
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Test connection by attempting to read from the collection
	// This will fail fast if the project ID is invalid or if there are permission issues
	_, err = client.Collection(collection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore repository initialized successfully",
		"projectID", projectID,
		"databaseID", databaseID,
		"collection", collection,
	)

	return &Firestore{
		client:     client,
		collection: collection,
	}, nil
}

// InsertComment creates a new comment document in Firestore
func (f *Firestore) InsertComment(ctx context.Context, doc *model.CommentDocument) error {
	if err := doc.Validate(); err != nil {
		return goerr.Wrap(err, "invalid comment document")
	}

	// Create fails when the document exists, so an insert never overwrites a previous submission
	_, err := f.client.Collection(f.collection).Doc(doc.ID.String()).Create(ctx, doc)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(err, "comment document already exists", goerr.V("id", doc.ID))
		}
		return goerr.Wrap(err, "failed to insert comment to firestore", goerr.V("id", doc.ID))
	}

	return nil
}

// ListComments lists comment documents of a data point, newest first
func (f *Firestore) ListComments(ctx context.Context, dataPointID types.DataPointID, limit int) ([]*model.CommentDocument, error) {
	if dataPointID == "" {
		return nil, goerr.New("data point ID is empty")
	}

	// Simple query without OrderBy to avoid requiring composite index
	// We'll sort in memory instead
	iter := f.client.Collection(f.collection).
		Where(fieldDataPointID, "==", dataPointID.String()).
		Documents(ctx)
	defer iter.Stop()

	var docs []*model.CommentDocument
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate comments")
		}

		var doc model.CommentDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode comment document", goerr.V("docID", snap.Ref.ID))
		}
		docs = append(docs, &doc)
	}

	sortNewestFirst(docs)

	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// Name returns the backend name
func (f *Firestore) Name() string {
	return "firestore"
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

var _ interfaces.CommentRepository = (*Firestore)(nil) // Compile-time interface check
