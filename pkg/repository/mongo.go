package repository

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/interfaces"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/domain/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoDisconnectTimeout = 10 * time.Second

// Mongo implements CommentRepository with MongoDB. The client is created once and shared by
// every insert; Close disconnects it.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongo connects to MongoDB and selects the comment collection
func NewMongo(ctx context.Context, uri, database, collection string) (*Mongo, error) {
	if uri == "" {
		return nil, goerr.New("mongo URI is empty")
	}
	if database == "" {
		return nil, goerr.New("mongo database is empty")
	}
	if collection == "" {
		collection = DefaultCommentsCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect to mongo")
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, goerr.Wrap(err, "failed to ping mongo", goerr.V("database", database))
	}

	ctxlog.From(ctx).Info("Mongo repository initialized successfully",
		"database", database,
		"collection", collection,
	)

	return &Mongo{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// InsertComment inserts one comment document
func (m *Mongo) InsertComment(ctx context.Context, doc *model.CommentDocument) error {
	if err := doc.Validate(); err != nil {
		return goerr.Wrap(err, "invalid comment document")
	}

	if _, err := m.collection.InsertOne(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to insert comment to mongo", goerr.V("id", doc.ID))
	}
	return nil
}

// ListComments lists comment documents of a data point, newest first
func (m *Mongo) ListComments(ctx context.Context, dataPointID types.DataPointID, limit int) ([]*model.CommentDocument, error) {
	if dataPointID == "" {
		return nil, goerr.New("data point ID is empty")
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "id", Value: -1},
	})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := m.collection.Find(ctx, bson.M{fieldDataPointID: dataPointID.String()}, opts)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to find comments", goerr.V("dataPointID", dataPointID))
	}

	var docs []*model.CommentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, goerr.Wrap(err, "failed to decode comments", goerr.V("dataPointID", dataPointID))
	}
	return docs, nil
}

// Name returns the backend name
func (m *Mongo) Name() string {
	return "mongo"
}

// Close disconnects the client
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoDisconnectTimeout)
	defer cancel()

	if err := m.client.Disconnect(ctx); err != nil {
		return goerr.Wrap(err, "failed to disconnect mongo")
	}
	return nil
}

var _ interfaces.CommentRepository = (*Mongo)(nil) // Compile-time interface check
