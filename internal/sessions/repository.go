package sessions

import (
	"context"
	"errors"

	"github.com/ecohealth/sentinel/internal/repository"
)

// Repository provides session persistence operations
type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByRefresh(ctx context.Context, refresh string) (*Session, error)
	DeleteByRefresh(ctx context.Context, refresh string) error
}

// CollectionRepository stores sessions in a document collection (MongoDB or
// the in-memory backend). Used when Redis is not configured.
type CollectionRepository struct {
	col repository.Collection[Session]
}

func NewCollectionRepository(col repository.Collection[Session]) *CollectionRepository {
	return &CollectionRepository{col: col}
}

func (r *CollectionRepository) Create(ctx context.Context, s *Session) error {
	return r.col.Insert(ctx, s)
}

// GetByRefresh returns (nil, nil) for unknown tokens.
func (r *CollectionRepository) GetByRefresh(ctx context.Context, refresh string) (*Session, error) {
	s, err := r.col.Get(ctx, refresh)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return s, err
}

func (r *CollectionRepository) DeleteByRefresh(ctx context.Context, refresh string) error {
	err := r.col.Delete(ctx, refresh)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}
