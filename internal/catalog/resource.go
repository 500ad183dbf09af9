package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/pcparts/catalog/internal/model"
	"github.com/pcparts/catalog/internal/nullable"
	"github.com/pcparts/catalog/internal/store"
)

// Resource declares everything the generic Service needs to know about one resource:
// how request fields are checked and applied, what the natural key is, and how the
// stored entity is rendered.
type Resource[E, D, V any] struct {
	Kind  model.Kind
	Table *store.Table[E]
	// Fields run in declaration order; the order of fields with a Check is the
	// order in which reference existence is verified.
	Fields   []Field[E, D]
	Key      []KeyPart[E]
	Children *Children[E]
	View     func(ctx context.Context, r *Resolver, e *E) (V, error)
}

// Field binds one request field to the entity.
type Field[E, D any] struct {
	Name     string
	Required bool
	// State reports whether the field was present in the payload and whether it is null.
	State func(d *D) (set, null bool)
	// Check verifies a present, non-null value (reference existence, set shape).
	Check func(ctx context.Context, r *Resolver, d *D) error
	// Apply copies the value onto the entity; absent or null values write the zero value.
	Apply func(d *D, e *E)
}

// KeyPart is one component of a natural key.
type KeyPart[E any] struct {
	Param  string
	Label  string
	Column string
	Value  func(e *E) any
	// Display renders the value in duplicate messages. Defaults to fmt.Sprint(Value).
	Display func(ctx context.Context, r *Resolver, e *E) (string, error)
}

// Children loads and saves rows owned by the entity.
type Children[E any] struct {
	Load   func(ctx context.Context, tx *store.Store, e *E) error
	Save   func(ctx context.Context, tx *store.Store, e *E) error
	Delete func(ctx context.Context, tx *store.Store, id string) error
}

func valueState[T any](v nullable.Value[T]) (bool, bool) {
	return v.IsSet(), v.IsNull()
}

// nameField is mandatory; blank names count as null.
func nameField[E, D any](get func(*D) *nullable.Value[string], dst func(*E) *string) Field[E, D] {
	return Field[E, D]{
		Name:     "name",
		Required: true,
		State: func(d *D) (bool, bool) {
			v := get(d)
			name, ok := v.Get()
			return v.IsSet(), !ok || strings.TrimSpace(name) == ""
		},
		Apply: func(d *D, e *E) { *dst(e) = strings.TrimSpace(get(d).OrZero()) },
	}
}

func intField[E, D any](name string, get func(*D) *nullable.Value[int], dst func(*E) *int) Field[E, D] {
	return Field[E, D]{
		Name:  name,
		State: func(d *D) (bool, bool) { return valueState(*get(d)) },
		Apply: func(d *D, e *E) { *dst(e) = get(d).OrZero() },
	}
}

func requiredIntField[E, D any](name string, get func(*D) *nullable.Value[int], dst func(*E) *int) Field[E, D] {
	f := intField(name, get, dst)
	f.Required = true
	return f
}

// refField is a mandatory reference to a dictionary row.
func refField[E, D any](name string, kind model.Kind, get func(*D) *nullable.Value[string], dst func(*E) *string) Field[E, D] {
	return Field[E, D]{
		Name:     name,
		Required: true,
		State:    func(d *D) (bool, bool) { return valueState(*get(d)) },
		Check: func(ctx context.Context, r *Resolver, d *D) error {
			return r.Check(ctx, kind, get(d).OrZero())
		},
		Apply: func(d *D, e *E) { *dst(e) = get(d).OrZero() },
	}
}

// optRefField is a reference that may be null.
func optRefField[E, D any](name string, kind model.Kind, get func(*D) *nullable.Value[string], dst func(*E) **string) Field[E, D] {
	return Field[E, D]{
		Name:  name,
		State: func(d *D) (bool, bool) { return valueState(*get(d)) },
		Check: func(ctx context.Context, r *Resolver, d *D) error {
			return r.Check(ctx, kind, get(d).OrZero())
		},
		Apply: func(d *D, e *E) { *dst(e) = get(d).Ptr() },
	}
}

// refSetField is a mandatory, non-empty set of references. Duplicate ids are invalid.
func refSetField[E, D any](name string, kind model.Kind, get func(*D) *nullable.Value[[]string], dst func(*E) *[]string) Field[E, D] {
	return Field[E, D]{
		Name:     name,
		Required: true,
		State: func(d *D) (bool, bool) {
			v := get(d)
			return v.IsSet(), len(v.OrZero()) == 0
		},
		Check: func(ctx context.Context, r *Resolver, d *D) error {
			ids := get(d).OrZero()
			seen := make(map[string]struct{}, len(ids))
			for _, id := range ids {
				if _, dup := seen[id]; dup || id == "" {
					return model.NewInvalidParameterError(name)
				}
				seen[id] = struct{}{}
			}
			for _, id := range ids {
				if err := r.Check(ctx, kind, id); err != nil {
					return err
				}
			}
			return nil
		},
		Apply: func(d *D, e *E) { *dst(e) = append([]string(nil), get(d).OrZero()...) },
	}
}

func column[E any](param, label, col string, value func(e *E) any) KeyPart[E] {
	return KeyPart[E]{Param: param, Label: label, Column: col, Value: value}
}

// namedColumn displays a referenced dictionary row by its name.
func namedColumn[E any](param, label, col string, kind model.Kind, id func(e *E) string) KeyPart[E] {
	return KeyPart[E]{
		Param:  param,
		Label:  label,
		Column: col,
		Value:  func(e *E) any { return id(e) },
		Display: func(ctx context.Context, r *Resolver, e *E) (string, error) {
			ref, err := r.Named(ctx, kind, id(e))
			if err != nil {
				return "", err
			}
			return ref.Name, nil
		},
	}
}

func (k KeyPart[E]) display(ctx context.Context, r *Resolver, e *E) (string, error) {
	if k.Display != nil {
		return k.Display(ctx, r, e)
	}
	return fmt.Sprint(k.Value(e)), nil
}

// ownedLinks stores a slice of the entity in a child table.
func ownedLinks[E, L any](t *store.LinkTable[L], id func(*E) string, items func(*E) *[]L) *Children[E] {
	return &Children[E]{
		Load: func(ctx context.Context, tx *store.Store, e *E) error {
			rows, err := store.NewLinks(tx, t).List(ctx, id(e))
			if err != nil {
				return err
			}
			*items(e) = rows
			return nil
		},
		Save: func(ctx context.Context, tx *store.Store, e *E) error {
			return store.NewLinks(tx, t).Replace(ctx, id(e), *items(e))
		},
		Delete: func(ctx context.Context, tx *store.Store, parentID string) error {
			return store.NewLinks(tx, t).DeleteParent(ctx, parentID)
		},
	}
}
