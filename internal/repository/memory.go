package repository

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ModelHandlers supplies the per-type hooks a generic adapter needs to manage
// identity without reflection on the hot path.
type ModelHandlers[T any] struct {
	GetID func(*T) string
	SetID func(*T, string)
}

// MemoryAdapter is a map-backed Adapter implementation. It is the storage
// fallback when no database is reachable and the fixture store for tests.
// Safe for concurrent use.
type MemoryAdapter[T any] struct {
	mu       sync.RWMutex
	docs     map[string]T
	order    []string
	handlers ModelHandlers[T]
	unique   []string
}

// NewMemoryAdapter creates a MemoryAdapter. uniqueTags names json-tagged
// fields enforced as unique across records, the in-memory equivalent of a
// unique index.
func NewMemoryAdapter[T any](handlers ModelHandlers[T], uniqueTags ...string) *MemoryAdapter[T] {
	return &MemoryAdapter[T]{
		docs:     make(map[string]T),
		handlers: handlers,
		unique:   uniqueTags,
	}
}

func (m *MemoryAdapter[T]) GetAll(ctx context.Context, filter Filter) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []T{}
	for _, id := range m.order {
		doc := m.docs[id]
		ok, err := matchesFilter(&doc, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *MemoryAdapter[T]) GetBy(ctx context.Context, filter Filter) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		doc := m.docs[id]
		ok, err := matchesFilter(&doc, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			return &doc, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryAdapter[T]) Create(ctx context.Context, doc *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkUnique(doc, ""); err != nil {
		return err
	}

	id := m.handlers.GetID(doc)
	if id == "" {
		id = uuid.NewString()
		m.handlers.SetID(doc, id)
	} else if _, exists := m.docs[id]; exists {
		return ErrDuplicate
	}

	now := time.Now().UTC()
	setTimeField(doc, "created_at", now)
	setTimeField(doc, "updated_at", now)

	m.docs[id] = *doc
	m.order = append(m.order, id)
	return nil
}

func (m *MemoryAdapter[T]) Update(ctx context.Context, id string, changes Filter) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, exists := m.docs[id]
	if !exists {
		return nil, ErrNotFound
	}

	updated := doc
	for tag, value := range changes {
		if err := setField(&updated, tag, value); err != nil {
			return nil, err
		}
	}

	if err := m.checkUnique(&updated, id); err != nil {
		return nil, err
	}

	setTimeField(&updated, "updated_at", time.Now().UTC())
	m.docs[id] = updated
	return &updated, nil
}

func (m *MemoryAdapter[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.docs[id]; !exists {
		return ErrNotFound
	}
	delete(m.docs, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// checkUnique enforces the configured unique fields against every record
// except the one identified by excludeID.
func (m *MemoryAdapter[T]) checkUnique(doc *T, excludeID string) error {
	for _, tag := range m.unique {
		value, ok := fieldValue(doc, tag)
		if !ok {
			continue
		}
		for id := range m.docs {
			if id == excludeID {
				continue
			}
			existing := m.docs[id]
			other, ok := fieldValue(&existing, tag)
			if ok && other == value {
				return ErrDuplicate
			}
		}
	}
	return nil
}

// fieldByTag finds the struct field whose json tag primary name matches tag.
func fieldByTag(v reflect.Value, tag string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == tag {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func fieldValue[T any](doc *T, tag string) (string, bool) {
	field, ok := fieldByTag(reflect.ValueOf(doc).Elem(), tag)
	if !ok {
		return "", false
	}
	return fmt.Sprint(field.Interface()), true
}

func matchesFilter[T any](doc *T, filter Filter) (bool, error) {
	v := reflect.ValueOf(doc).Elem()
	for tag, want := range filter {
		field, ok := fieldByTag(v, tag)
		if !ok {
			return false, fmt.Errorf("unknown filter field %q", tag)
		}
		got := field.Interface()
		if !reflect.DeepEqual(got, want) && fmt.Sprint(got) != fmt.Sprint(want) {
			return false, nil
		}
	}
	return true, nil
}

func setField[T any](doc *T, tag string, value any) error {
	field, ok := fieldByTag(reflect.ValueOf(doc).Elem(), tag)
	if !ok || !field.CanSet() {
		return fmt.Errorf("unknown update field %q", tag)
	}

	rv := reflect.ValueOf(value)
	switch {
	case value == nil:
		field.Set(reflect.Zero(field.Type()))
	case rv.Type().AssignableTo(field.Type()):
		field.Set(rv)
	case field.Kind() == reflect.Pointer && rv.Type().AssignableTo(field.Type().Elem()):
		p := reflect.New(field.Type().Elem())
		p.Elem().Set(rv)
		field.Set(p)
	case rv.Type().ConvertibleTo(field.Type()):
		field.Set(rv.Convert(field.Type()))
	default:
		return fmt.Errorf("cannot assign %T to field %q", value, tag)
	}
	return nil
}

func setTimeField[T any](doc *T, tag string, now time.Time) {
	field, ok := fieldByTag(reflect.ValueOf(doc).Elem(), tag)
	if ok && field.CanSet() && field.Type() == reflect.TypeOf(time.Time{}) {
		field.Set(reflect.ValueOf(now))
	}
}
