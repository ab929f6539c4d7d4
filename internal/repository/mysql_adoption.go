package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/adoptme/adoptme-go/internal/model"
	"github.com/google/uuid"
)

var adoptionColumns = map[string]string{
	"id":    "id",
	"owner": "owner",
	"pet":   "pet",
}

const adoptionSelect = `SELECT id, owner, pet, created_at, updated_at FROM adoptions`

// MySQLAdoptionAdapter implements Adapter[model.Adoption] over an adoptions table.
type MySQLAdoptionAdapter struct {
	db *sql.DB
}

func NewMySQLAdoptionAdapter(db *sql.DB) *MySQLAdoptionAdapter {
	return &MySQLAdoptionAdapter{db: db}
}

func (a *MySQLAdoptionAdapter) GetAll(ctx context.Context, filter Filter) ([]model.Adoption, error) {
	where, args, err := buildWhere(adoptionColumns, filter)
	if err != nil {
		return nil, err
	}

	rows, err := a.db.QueryContext(ctx, adoptionSelect+where+" ORDER BY created_at", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var adoptions []model.Adoption
	for rows.Next() {
		var ad model.Adoption
		if err := rows.Scan(&ad.ID, &ad.Owner, &ad.Pet, &ad.CreatedAt, &ad.UpdatedAt); err != nil {
			return nil, err
		}
		adoptions = append(adoptions, ad)
	}
	return adoptions, rows.Err()
}

func (a *MySQLAdoptionAdapter) GetBy(ctx context.Context, filter Filter) (*model.Adoption, error) {
	where, args, err := buildWhere(adoptionColumns, filter)
	if err != nil {
		return nil, err
	}

	ad := &model.Adoption{}
	err = a.db.QueryRowContext(ctx, adoptionSelect+where+" LIMIT 1", args...).
		Scan(&ad.ID, &ad.Owner, &ad.Pet, &ad.CreatedAt, &ad.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ad, nil
}

func (a *MySQLAdoptionAdapter) Create(ctx context.Context, doc *model.Adoption) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	query := `INSERT INTO adoptions (id, owner, pet) VALUES (?, ?, ?)`
	if _, err := a.db.ExecContext(ctx, query, doc.ID, doc.Owner, doc.Pet); err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicate
		}
		return err
	}

	created, err := a.GetBy(ctx, Filter{"id": doc.ID})
	if err != nil {
		return err
	}
	*doc = *created
	return nil
}

func (a *MySQLAdoptionAdapter) Update(ctx context.Context, id string, changes Filter) (*model.Adoption, error) {
	set, args, err := buildSet(adoptionColumns, changes)
	if err != nil {
		return nil, err
	}

	args = append(args, id)
	if _, err := a.db.ExecContext(ctx, `UPDATE adoptions SET `+set+` WHERE id = ?`, args...); err != nil {
		return nil, err
	}

	return a.GetBy(ctx, Filter{"id": id})
}

func (a *MySQLAdoptionAdapter) Delete(ctx context.Context, id string) error {
	result, err := a.db.ExecContext(ctx, `DELETE FROM adoptions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
