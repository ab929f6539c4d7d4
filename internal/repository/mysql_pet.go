package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/adoptme/adoptme-go/internal/model"
	"github.com/google/uuid"
)

var petColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"specie":     "specie",
	"birth_date": "birth_date",
	"adopted":    "adopted",
	"owner":      "owner",
	"image":      "image",
}

const petSelect = `SELECT id, name, specie, birth_date, adopted, owner, image, created_at, updated_at FROM pets`

// MySQLPetAdapter implements Adapter[model.Pet] over a pets table.
type MySQLPetAdapter struct {
	db *sql.DB
}

func NewMySQLPetAdapter(db *sql.DB) *MySQLPetAdapter {
	return &MySQLPetAdapter{db: db}
}

func (a *MySQLPetAdapter) GetAll(ctx context.Context, filter Filter) ([]model.Pet, error) {
	where, args, err := buildWhere(petColumns, filter)
	if err != nil {
		return nil, err
	}

	rows, err := a.db.QueryContext(ctx, petSelect+where+" ORDER BY created_at", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pets []model.Pet
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		pets = append(pets, *p)
	}
	return pets, rows.Err()
}

func (a *MySQLPetAdapter) GetBy(ctx context.Context, filter Filter) (*model.Pet, error) {
	where, args, err := buildWhere(petColumns, filter)
	if err != nil {
		return nil, err
	}

	p, err := scanPet(a.db.QueryRowContext(ctx, petSelect+where+" LIMIT 1", args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (a *MySQLPetAdapter) Create(ctx context.Context, doc *model.Pet) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	query := `INSERT INTO pets (id, name, specie, birth_date, adopted, owner, image) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := a.db.ExecContext(ctx, query,
		doc.ID, doc.Name, doc.Specie, doc.BirthDate, doc.Adopted, doc.Owner, doc.Image)
	if err != nil {
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

func (a *MySQLPetAdapter) Update(ctx context.Context, id string, changes Filter) (*model.Pet, error) {
	set, args, err := buildSet(petColumns, changes)
	if err != nil {
		return nil, err
	}

	args = append(args, id)
	if _, err := a.db.ExecContext(ctx, `UPDATE pets SET `+set+` WHERE id = ?`, args...); err != nil {
		return nil, err
	}

	return a.GetBy(ctx, Filter{"id": id})
}

func (a *MySQLPetAdapter) Delete(ctx context.Context, id string) error {
	result, err := a.db.ExecContext(ctx, `DELETE FROM pets WHERE id = ?`, id)
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

func scanPet(row rowScanner) (*model.Pet, error) {
	p := &model.Pet{}
	err := row.Scan(&p.ID, &p.Name, &p.Specie, &p.BirthDate, &p.Adopted,
		&p.Owner, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}
