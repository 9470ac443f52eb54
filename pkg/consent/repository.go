package consent

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrRecordNotFound is returned by repositories when no record matches.
var ErrRecordNotFound = errors.New("consent record not found")

// Repository abstracts consent-record storage.
type Repository interface {
	Create(ctx context.Context, record Record) (Record, error)
	Get(ctx context.Context, id uuid.UUID) (Record, error)
	ListBySubject(ctx context.Context, subjectID string) ([]Record, error)
	FindActive(ctx context.Context, subjectID, domain string) (Record, error)
	Update(ctx context.Context, record Record) (Record, error)
}
