package interfaces

//go:generate moq -out mocks/repository_mock.go -pkg mocks . CommentRepository

import (
	"context"

	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/domain/types"
)

// CommentRepository defines the interface for the comment document store
type CommentRepository interface {
	// InsertComment appends a new comment document. Existing documents are never updated.
	InsertComment(ctx context.Context, doc *model.CommentDocument) error

	// ListComments returns documents of the data point, newest first. limit <= 0 means no limit.
	ListComments(ctx context.Context, dataPointID types.DataPointID, limit int) ([]*model.CommentDocument, error)

	// Name returns the backend name used in logs and metrics
	Name() string

	// Close closes the repository connection
	Close() error
}
