package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/interfaces"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/domain/types"
)

// Memory implements CommentRepository with in-memory storage
type Memory struct {
	mu       sync.RWMutex
	comments []*model.CommentDocument
	ids      map[types.CommentID]struct{}
}

// NewMemory creates a new memory repository
func NewMemory() *Memory {
	return &Memory{
		ids: make(map[types.CommentID]struct{}),
	}
}

// InsertComment appends a comment document to memory
func (m *Memory) InsertComment(ctx context.Context, doc *model.CommentDocument) error {
	if err := doc.Validate(); err != nil {
		return goerr.Wrap(err, "invalid comment document")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.ids[doc.ID]; exists {
		return goerr.New("comment document already exists", goerr.V("id", doc.ID))
	}

	m.ids[doc.ID] = struct{}{}
	m.comments = append(m.comments, copyCommentDocument(doc))
	return nil
}

// ListComments lists comment documents of a data point, newest first
func (m *Memory) ListComments(ctx context.Context, dataPointID types.DataPointID, limit int) ([]*model.CommentDocument, error) {
	if dataPointID == "" {
		return nil, goerr.New("data point ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var docs []*model.CommentDocument
	for _, doc := range m.comments {
		if doc.DataPointID == dataPointID {
			docs = append(docs, copyCommentDocument(doc))
		}
	}

	sortNewestFirst(docs)

	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// Name returns the backend name
func (m *Memory) Name() string {
	return "memory"
}

// Close is a no-op for memory repository
func (m *Memory) Close() error {
	return nil
}

// copyCommentDocument deep copies a document to prevent external modification
func copyCommentDocument(doc *model.CommentDocument) *model.CommentDocument {
	docCopy := *doc
	docCopy.CountryData = append([]model.Record(nil), doc.CountryData...)
	docCopy.Comments = append([]model.Comment(nil), doc.Comments...)
	return &docCopy
}

// sortNewestFirst orders documents by creation time, newest first. IDs are UUIDv7 and break ties.
func sortNewestFirst(docs []*model.CommentDocument) {
	sort.SliceStable(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		}
		return docs[i].ID > docs[j].ID
	})
}

var _ interfaces.CommentRepository = (*Memory)(nil) // Compile-time interface check
