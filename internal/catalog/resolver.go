package catalog

import (
	"context"
	"errors"

	"github.com/pcparts/catalog/internal/model"
	"github.com/pcparts/catalog/internal/store"
)

// NamedRef is the nested form of a named dictionary reference in responses.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Resolver looks up referenced dictionary rows through one store (usually a transaction)
// and remembers what it has seen for the rest of the operation.
type Resolver struct {
	st       *store.Store
	named    map[model.Kind]map[string]NamedRef
	fanSizes map[string]model.FanSize
}

func NewResolver(st *store.Store) *Resolver {
	return &Resolver{
		st:       st,
		named:    make(map[model.Kind]map[string]NamedRef),
		fanSizes: make(map[string]model.FanSize),
	}
}

// Check fails with a reference NotFoundError when id does not exist in kind's table.
func (r *Resolver) Check(ctx context.Context, kind model.Kind, id string) error {
	if kind == model.KindFanSize {
		_, err := r.FanSize(ctx, id)
		return err
	}
	_, err := r.Named(ctx, kind, id)
	return err
}

func (r *Resolver) Named(ctx context.Context, kind model.Kind, id string) (NamedRef, error) {
	if ref, ok := r.named[kind][id]; ok {
		return ref, nil
	}
	table := store.DictionaryTable(kind)
	if table == nil || id == "" {
		return NamedRef{}, model.NewReferenceNotFoundError(kind, id)
	}
	d, err := store.NewRepo(r.st, table).Get(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return NamedRef{}, model.NewReferenceNotFoundError(kind, id)
		}
		return NamedRef{}, err
	}
	ref := NamedRef{ID: d.ID, Name: d.Name}
	if r.named[kind] == nil {
		r.named[kind] = make(map[string]NamedRef)
	}
	r.named[kind][id] = ref
	return ref, nil
}

// OptionalNamed returns nil for a nil id.
func (r *Resolver) OptionalNamed(ctx context.Context, kind model.Kind, id *string) (*NamedRef, error) {
	if id == nil {
		return nil, nil
	}
	ref, err := r.Named(ctx, kind, *id)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *Resolver) FanSize(ctx context.Context, id string) (model.FanSize, error) {
	if fs, ok := r.fanSizes[id]; ok {
		return fs, nil
	}
	if id == "" {
		return model.FanSize{}, model.NewReferenceNotFoundError(model.KindFanSize, id)
	}
	fs, err := store.NewRepo(r.st, store.FanSizes).Get(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.FanSize{}, model.NewReferenceNotFoundError(model.KindFanSize, id)
		}
		return model.FanSize{}, err
	}
	r.fanSizes[id] = *fs
	return *fs, nil
}
