package repository

import (
	"context"

	"sweet-shop/internal/domain"
)

// SweetRepository defines the interface for sweet persistence
type SweetRepository interface {
	// Save inserts the sweet or replaces the stored record with the same ID
	Save(ctx context.Context, sweet *domain.Sweet) error
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	// FindAll returns every sweet in insertion order
	FindAll(ctx context.Context) ([]domain.Sweet, error)
	Delete(ctx context.Context, id string) error
}

// InMemorySweetRepository keeps value copies of the sweets so callers
// never share state with the repository. It is not safe for concurrent use;
// inventory.Store serializes access.
type InMemorySweetRepository struct {
	sweets map[string]domain.Sweet
	order  []string
}

func NewInMemorySweetRepository() *InMemorySweetRepository {
	return &InMemorySweetRepository{
		sweets: make(map[string]domain.Sweet),
		order:  make([]string, 0),
	}
}

func (r *InMemorySweetRepository) Save(ctx context.Context, sweet *domain.Sweet) error {
	if _, exists := r.sweets[sweet.ID]; !exists {
		r.order = append(r.order, sweet.ID)
	}
	r.sweets[sweet.ID] = *sweet
	return nil
}

func (r *InMemorySweetRepository) FindByID(ctx context.Context, id string) (*domain.Sweet, error) {
	sweet, exists := r.sweets[id]
	if !exists {
		return nil, &domain.NotFoundError{ID: id}
	}
	return &sweet, nil
}

func (r *InMemorySweetRepository) FindAll(ctx context.Context) ([]domain.Sweet, error) {
	sweets := make([]domain.Sweet, 0, len(r.order))
	for _, id := range r.order {
		sweets = append(sweets, r.sweets[id])
	}
	return sweets, nil
}

func (r *InMemorySweetRepository) Delete(ctx context.Context, id string) error {
	if _, exists := r.sweets[id]; !exists {
		return &domain.NotFoundError{ID: id}
	}
	delete(r.sweets, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
