package repository

import (
	"context"
	"time"

	"github.com/adoptme/adoptme-go/internal/model"
)

// PetRepository specializes the generic repository with pet lookups.
type PetRepository struct {
	*Repository[model.Pet]
}

func NewPetRepository(adapter Adapter[model.Pet], timeout time.Duration) *PetRepository {
	return &PetRepository{Repository: NewRepository(adapter, timeout)}
}

func NewMemoryPetAdapter() *MemoryAdapter[model.Pet] {
	return NewMemoryAdapter(ModelHandlers[model.Pet]{
		GetID: func(p *model.Pet) string { return p.ID },
		SetID: func(p *model.Pet, id string) { p.ID = id },
	})
}

func (r *PetRepository) GetByID(ctx context.Context, id string) (*model.Pet, error) {
	return r.GetBy(ctx, Filter{"id": id})
}

// MarkAdopted records the pet as adopted by the given owner.
func (r *PetRepository) MarkAdopted(ctx context.Context, id, owner string) (*model.Pet, error) {
	return r.Update(ctx, id, Filter{"adopted": true, "owner": owner})
}
