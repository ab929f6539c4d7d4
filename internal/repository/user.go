package repository

import (
	"context"
	"time"

	"github.com/adoptme/adoptme-go/internal/model"
)

// UserRepository specializes the generic repository with user lookups. The
// wrappers only narrow filters; persistence stays in the generic layer.
type UserRepository struct {
	*Repository[model.User]
}

func NewUserRepository(adapter Adapter[model.User], timeout time.Duration) *UserRepository {
	return &UserRepository{Repository: NewRepository(adapter, timeout)}
}

// NewMemoryUserAdapter creates the in-memory user store with email enforced
// unique, mirroring the database's unique index.
func NewMemoryUserAdapter() *MemoryAdapter[model.User] {
	return NewMemoryAdapter(ModelHandlers[model.User]{
		GetID: func(u *model.User) string { return u.ID },
		SetID: func(u *model.User, id string) { u.ID = id },
	}, "email")
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.GetBy(ctx, Filter{"email": email})
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.GetBy(ctx, Filter{"id": id})
}

func (r *UserRepository) UpdateLastConnection(ctx context.Context, id string, at time.Time) error {
	_, err := r.Update(ctx, id, Filter{"last_connection": at})
	return err
}
