package repository

import (
	"context"
	"time"

	"github.com/adoptme/adoptme-go/internal/model"
)

// AdoptionRepository specializes the generic repository with adoption lookups.
type AdoptionRepository struct {
	*Repository[model.Adoption]
}

func NewAdoptionRepository(adapter Adapter[model.Adoption], timeout time.Duration) *AdoptionRepository {
	return &AdoptionRepository{Repository: NewRepository(adapter, timeout)}
}

func NewMemoryAdoptionAdapter() *MemoryAdapter[model.Adoption] {
	return NewMemoryAdapter(ModelHandlers[model.Adoption]{
		GetID: func(a *model.Adoption) string { return a.ID },
		SetID: func(a *model.Adoption, id string) { a.ID = id },
	})
}

func (r *AdoptionRepository) GetByID(ctx context.Context, id string) (*model.Adoption, error) {
	return r.GetBy(ctx, Filter{"id": id})
}

func (r *AdoptionRepository) GetByOwner(ctx context.Context, owner string) ([]model.Adoption, error) {
	return r.GetAll(ctx, Filter{"owner": owner})
}
