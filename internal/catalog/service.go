package catalog

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"

	"github.com/pcparts/catalog/internal/model"
	"github.com/pcparts/catalog/internal/store"
)

// PageRequest asks for one page sorted by a client-facing key.
type PageRequest struct {
	Offset int
	Limit  int
	Sort   string
	Desc   bool
}

// Page is one window of a sorted listing.
type Page[V any] struct {
	Content       []V    `json:"content"`
	Offset        int    `json:"offset"`
	Limit         int    `json:"limit"`
	TotalElements int    `json:"totalElements"`
	TotalPages    int    `json:"totalPages"`
	Sort          string `json:"sort"`
}

// Service is the validated CRUD routine for one resource. Every operation runs in a
// single transaction and returns at most one domain error.
type Service[E, D, V any] struct {
	st  *store.Store
	res *Resource[E, D, V]
	log zerolog.Logger
}

func NewService[E, D, V any](st *store.Store, res *Resource[E, D, V], log zerolog.Logger) *Service[E, D, V] {
	return &Service[E, D, V]{
		st:  st,
		res: res,
		log: log.With().Str("resource", res.Kind.Path()).Logger(),
	}
}

func (s *Service[E, D, V]) Kind() model.Kind { return s.res.Kind }

func (s *Service[E, D, V]) List(ctx context.Context) ([]V, error) {
	var out []V
	err := s.st.InTx(ctx, func(tx *store.Store) error {
		items, err := store.NewRepo(tx, s.res.Table).List(ctx)
		if err != nil {
			return err
		}
		out, err = s.viewAll(ctx, tx, items)
		return err
	})
	return out, err
}

func (s *Service[E, D, V]) Page(ctx context.Context, req PageRequest) (*Page[V], error) {
	sortKey := req.Sort
	if sortKey == "" {
		sortKey = s.res.Table.DefaultSort
	}
	col, ok := s.res.Table.SortColumn(sortKey)
	if !ok {
		return nil, model.NewInvalidParameterError("sort")
	}
	if req.Offset < 0 {
		return nil, model.NewInvalidParameterError("offset")
	}
	if req.Limit <= 0 {
		return nil, model.NewInvalidParameterError("limit")
	}

	page := &Page[V]{Offset: req.Offset, Limit: req.Limit, Sort: sortKey + ",asc"}
	if req.Desc {
		page.Sort = sortKey + ",desc"
	}
	err := s.st.InTx(ctx, func(tx *store.Store) error {
		items, total, err := store.NewRepo(tx, s.res.Table).Page(ctx, store.PageRequest{
			Offset: req.Offset,
			Limit:  req.Limit,
			Column: col,
			Desc:   req.Desc,
		})
		if err != nil {
			return err
		}
		page.TotalElements = total
		page.TotalPages = (total + req.Limit - 1) / req.Limit
		page.Content, err = s.viewAll(ctx, tx, items)
		return err
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// Get fails with a path NotFoundError when id is unknown.
func (s *Service[E, D, V]) Get(ctx context.Context, id string) (V, error) {
	var out V
	err := s.st.InTx(ctx, func(tx *store.Store) error {
		var err error
		out, err = s.reread(ctx, tx, NewResolver(tx), id)
		return err
	})
	return out, err
}

// Create runs required, existence and uniqueness checks before inserting.
func (s *Service[E, D, V]) Create(ctx context.Context, dto *D) (V, error) {
	var out V
	err := s.st.InTx(ctx, func(tx *store.Store) error {
		r := NewResolver(tx)
		if err := s.checkRequired(dto, false); err != nil {
			return err
		}
		if err := s.checkReferences(ctx, r, dto); err != nil {
			return err
		}
		e := new(E)
		s.apply(dto, e, false)
		de, err := s.checkUnique(ctx, tx, r, e, "")
		if err != nil {
			return err
		}
		if err := store.NewRepo(tx, s.res.Table).Insert(ctx, e); err != nil {
			return keyConflict(err, de)
		}
		if err := s.saveChildren(ctx, tx, e); err != nil {
			return err
		}
		out, err = s.reread(ctx, tx, r, *s.res.Table.ID(e))
		return err
	})
	if err != nil {
		s.logRejected(err, "create", "")
		return out, err
	}
	s.log.Info().Msg("created")
	return out, nil
}

// Replace overwrites every field; omitted optional fields become null or zero.
func (s *Service[E, D, V]) Replace(ctx context.Context, id string, dto *D) (V, error) {
	var out V
	err := s.st.InTx(ctx, func(tx *store.Store) error {
		r := NewResolver(tx)
		if _, err := s.load(ctx, tx, id); err != nil {
			return err
		}
		if err := s.checkRequired(dto, false); err != nil {
			return err
		}
		if err := s.checkReferences(ctx, r, dto); err != nil {
			return err
		}
		e := new(E)
		*s.res.Table.ID(e) = id
		s.apply(dto, e, false)
		de, err := s.checkUnique(ctx, tx, r, e, id)
		if err != nil {
			return err
		}
		if err := s.persist(ctx, tx, e, de); err != nil {
			return err
		}
		out, err = s.reread(ctx, tx, r, id)
		return err
	})
	if err != nil {
		s.logRejected(err, "replace", id)
		return out, err
	}
	s.log.Info().Str("id", id).Msg("replaced")
	return out, nil
}

// Update merges the supplied fields onto the stored record.
func (s *Service[E, D, V]) Update(ctx context.Context, id string, dto *D) (V, error) {
	var out V
	err := s.st.InTx(ctx, func(tx *store.Store) error {
		r := NewResolver(tx)
		e, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.checkRequired(dto, true); err != nil {
			return err
		}
		if err := s.checkReferences(ctx, r, dto); err != nil {
			return err
		}
		s.apply(dto, e, true)
		de, err := s.checkUnique(ctx, tx, r, e, id)
		if err != nil {
			return err
		}
		if err := s.persist(ctx, tx, e, de); err != nil {
			return err
		}
		out, err = s.reread(ctx, tx, r, id)
		return err
	})
	if err != nil {
		s.logRejected(err, "update", id)
		return out, err
	}
	s.log.Info().Str("id", id).Msg("updated")
	return out, nil
}

// Delete is idempotent and removes owned child rows with the record. A row still
// referenced by a component is kept and the request is rejected on "id".
func (s *Service[E, D, V]) Delete(ctx context.Context, id string) error {
	err := s.st.InTx(ctx, func(tx *store.Store) error {
		if c := s.res.Children; c != nil && c.Delete != nil {
			if err := c.Delete(ctx, tx, id); err != nil {
				return err
			}
		}
		err := store.NewRepo(tx, s.res.Table).Delete(ctx, id)
		if errors.Is(err, model.ErrReferenced) {
			return model.NewInvalidParameterError("id")
		}
		return err
	})
	if err != nil {
		s.logRejected(err, "delete", id)
		return err
	}
	s.log.Info().Str("id", id).Msg("deleted")
	return nil
}

func (s *Service[E, D, V]) checkRequired(dto *D, partial bool) error {
	for _, f := range s.res.Fields {
		if !f.Required {
			continue
		}
		set, null := f.State(dto)
		if partial && !set {
			continue
		}
		if !set || null {
			return model.NewInvalidParameterError(f.Name)
		}
	}
	return nil
}

func (s *Service[E, D, V]) checkReferences(ctx context.Context, r *Resolver, dto *D) error {
	for _, f := range s.res.Fields {
		if f.Check == nil {
			continue
		}
		if set, null := f.State(dto); !set || null {
			continue
		}
		if err := f.Check(ctx, r, dto); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service[E, D, V]) apply(dto *D, e *E, partial bool) {
	for _, f := range s.res.Fields {
		if partial {
			if set, _ := f.State(dto); !set {
				continue
			}
		}
		f.Apply(dto, e)
	}
}

// checkUnique rejects e when another row already holds its natural key. The returned
// DuplicateError is what a unique violation raised by the following write maps to; it
// is nil for kinds without a key.
func (s *Service[E, D, V]) checkUnique(ctx context.Context, tx *store.Store, r *Resolver, e *E, excludeID string) (*model.DuplicateError, error) {
	if len(s.res.Key) == 0 {
		return nil, nil
	}
	// Resolved before the write: a failed statement aborts a postgres transaction.
	de := model.DuplicateError{Kind: s.res.Kind}
	where := sq.Eq{}
	for _, k := range s.res.Key {
		where[k.Column] = k.Value(e)
		v, err := k.display(ctx, r, e)
		if err != nil {
			return nil, err
		}
		de.Params = append(de.Params, k.Param)
		de.Labels = append(de.Labels, k.Label)
		de.Values = append(de.Values, v)
	}
	taken, err := store.NewRepo(tx, s.res.Table).ExistsByKey(ctx, where, excludeID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, de
	}
	return &de, nil
}

// keyConflict maps a unique violation lost to a concurrent writer onto de.
func keyConflict(err error, de *model.DuplicateError) error {
	if de != nil && errors.Is(err, model.ErrDuplicateKey) {
		return *de
	}
	return err
}

func (s *Service[E, D, V]) load(ctx context.Context, tx *store.Store, id string) (*E, error) {
	e, err := store.NewRepo(tx, s.res.Table).Get(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewNotFoundError(s.res.Kind, id)
		}
		return nil, err
	}
	if c := s.res.Children; c != nil && c.Load != nil {
		if err := c.Load(ctx, tx, e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (s *Service[E, D, V]) persist(ctx context.Context, tx *store.Store, e *E, de *model.DuplicateError) error {
	if err := store.NewRepo(tx, s.res.Table).Update(ctx, e); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewNotFoundError(s.res.Kind, *s.res.Table.ID(e))
		}
		return keyConflict(err, de)
	}
	return s.saveChildren(ctx, tx, e)
}

func (s *Service[E, D, V]) saveChildren(ctx context.Context, tx *store.Store, e *E) error {
	if c := s.res.Children; c != nil && c.Save != nil {
		return c.Save(ctx, tx, e)
	}
	return nil
}

// reread renders the row as committed inside the current transaction.
func (s *Service[E, D, V]) reread(ctx context.Context, tx *store.Store, r *Resolver, id string) (V, error) {
	var out V
	e, err := s.load(ctx, tx, id)
	if err != nil {
		return out, err
	}
	return s.res.View(ctx, r, e)
}

func (s *Service[E, D, V]) viewAll(ctx context.Context, tx *store.Store, items []*E) ([]V, error) {
	r := NewResolver(tx)
	out := make([]V, 0, len(items))
	for _, e := range items {
		if c := s.res.Children; c != nil && c.Load != nil {
			if err := c.Load(ctx, tx, e); err != nil {
				return nil, err
			}
		}
		v, err := s.res.View(ctx, r, e)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *Service[E, D, V]) logRejected(err error, op, id string) {
	var v model.Violator
	if errors.As(err, &v) {
		s.log.Debug().Str("op", op).Str("id", id).Str("violation", v.Error()).Msg("write rejected")
		return
	}
	s.log.Error().Stack().Err(err).Str("op", op).Str("id", id).Msg("write failed")
}
