package repository

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// NewDB creates a MySQL connection pool with the given DSN.
func NewDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}

// buildWhere renders a WHERE clause from a filter, translating json-tag keys
// through the adapter's column whitelist. Keys are sorted so generated SQL is
// deterministic.
func buildWhere(columns map[string]string, filter Filter) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}

	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var conds []string
	var args []any
	for _, k := range keys {
		col, ok := columns[k]
		if !ok {
			return "", nil, fmt.Errorf("unknown filter field %q", k)
		}
		conds = append(conds, col+" = ?")
		args = append(args, filter[k])
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// buildSet renders a SET clause from a partial document, same key handling as
// buildWhere.
func buildSet(columns map[string]string, changes Filter) (string, []any, error) {
	if len(changes) == 0 {
		return "", nil, fmt.Errorf("empty update")
	}

	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var assigns []string
	var args []any
	for _, k := range keys {
		col, ok := columns[k]
		if !ok {
			return "", nil, fmt.Errorf("unknown update field %q", k)
		}
		assigns = append(assigns, col+" = ?")
		args = append(args, changes[k])
	}
	return strings.Join(assigns, ", "), args, nil
}
