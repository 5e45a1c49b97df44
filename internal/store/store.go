package store

import (
	"context"
	"errors"

	"github.com/legallenshq/legal-lens-api/internal/models"
)

// ErrNotFound is returned by Get for an identifier with no stored analysis.
var ErrNotFound = errors.New("analysis not found")

// Store keeps completed analyses by identifier. Put is called only after
// normalization succeeds, so a returned identifier always resolves to a fully
// validated record. There is no update or delete.
type Store interface {
	Put(ctx context.Context, analysis *models.StructuredAnalysis) (string, error)
	Get(ctx context.Context, id string) (*models.StructuredAnalysis, error)
}
