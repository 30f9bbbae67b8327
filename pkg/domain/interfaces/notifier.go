package interfaces

//go:generate moq -out mocks/notifier_mock.go -pkg mocks . Notifier

import (
	"context"

	"github.com/secmon-lab/covidash/pkg/domain/model"
)

// Notifier announces stored comments to an external channel
type Notifier interface {
	NotifyComment(ctx context.Context, doc *model.CommentDocument) error
}
