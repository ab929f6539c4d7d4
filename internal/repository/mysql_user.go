package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/adoptme/adoptme-go/internal/model"
	"github.com/google/uuid"
)

var userColumns = map[string]string{
	"id":              "id",
	"first_name":      "first_name",
	"last_name":       "last_name",
	"email":           "email",
	"password":        "password",
	"role":            "role",
	"last_connection": "last_connection",
}

const userSelect = `SELECT id, first_name, last_name, email, password, role, last_connection, created_at, updated_at FROM users`

// MySQLUserAdapter implements Adapter[model.User] over a users table with a
// unique index on email.
type MySQLUserAdapter struct {
	db *sql.DB
}

func NewMySQLUserAdapter(db *sql.DB) *MySQLUserAdapter {
	return &MySQLUserAdapter{db: db}
}

func (a *MySQLUserAdapter) GetAll(ctx context.Context, filter Filter) ([]model.User, error) {
	where, args, err := buildWhere(userColumns, filter)
	if err != nil {
		return nil, err
	}

	rows, err := a.db.QueryContext(ctx, userSelect+where+" ORDER BY created_at", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (a *MySQLUserAdapter) GetBy(ctx context.Context, filter Filter) (*model.User, error) {
	where, args, err := buildWhere(userColumns, filter)
	if err != nil {
		return nil, err
	}

	u, err := scanUser(a.db.QueryRowContext(ctx, userSelect+where+" LIMIT 1", args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (a *MySQLUserAdapter) Create(ctx context.Context, doc *model.User) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	query := `INSERT INTO users (id, first_name, last_name, email, password, role) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := a.db.ExecContext(ctx, query,
		doc.ID, doc.FirstName, doc.LastName, doc.Email, doc.Password, doc.Role)
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

func (a *MySQLUserAdapter) Update(ctx context.Context, id string, changes Filter) (*model.User, error) {
	set, args, err := buildSet(userColumns, changes)
	if err != nil {
		return nil, err
	}

	args = append(args, id)
	_, err = a.db.ExecContext(ctx, `UPDATE users SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		if isDuplicateEntryError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	return a.GetBy(ctx, Filter{"id": id})
}

func (a *MySQLUserAdapter) Delete(ctx context.Context, id string) error {
	result, err := a.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.User, error) {
	u := &model.User{}
	var lastConn sql.NullTime
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password,
		&u.Role, &lastConn, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lastConn.Valid {
		u.LastConnection = &lastConn.Time
	}
	return u, nil
}
