package interfaces

//go:generate moq -out mocks/warehouse_mock.go -pkg mocks . Warehouse

import (
	"context"

	"github.com/secmon-lab/covidash/pkg/domain/model"
)

// Warehouse runs SQL against the analytics warehouse. Every call opens its own session and
// releases it before returning.
type Warehouse interface {
	Query(ctx context.Context, query string, args ...any) (*model.Table, error)
}
