package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/pcparts/catalog/internal/model"
)

// Table describes how an entity maps onto one SQL table. The id column is implicit.
type Table[E any] struct {
	Name    string
	Columns []string
	// Values returns column values in Columns order.
	Values func(e *E) []any
	// Dest returns scan destinations for id followed by Columns.
	Dest func(e *E) []any
	ID   func(e *E) *string
	// Sorts maps client-facing sort keys to columns.
	Sorts       map[string]string
	DefaultSort string
}

// SortColumn resolves a client sort key; an empty key selects the default.
func (t *Table[E]) SortColumn(key string) (string, bool) {
	if key == "" {
		key = t.DefaultSort
	}
	col, ok := t.Sorts[key]
	return col, ok
}

// PageRequest selects a window of rows ordered by a single column.
type PageRequest struct {
	Offset int
	Limit  int
	Column string
	Desc   bool
}

// Repo runs generic CRUD for one table on a Store (or a transaction-bound Store).
type Repo[E any] struct {
	st *Store
	t  *Table[E]
}

func NewRepo[E any](st *Store, t *Table[E]) Repo[E] {
	return Repo[E]{st: st, t: t}
}

func (r Repo[E]) columns() []string {
	return append([]string{"id"}, r.t.Columns...)
}

func (r Repo[E]) defaultOrder() string {
	col, ok := r.t.SortColumn("")
	if !ok {
		return "id ASC"
	}
	return col + " ASC"
}

// Get returns model.ErrNotFound when no row has the id.
func (r Repo[E]) Get(ctx context.Context, id string) (*E, error) {
	row, err := r.st.queryRow(ctx, r.st.builder.
		Select(r.columns()...).
		From(r.t.Name).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	e := new(E)
	if err := row.Scan(r.t.Dest(e)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", r.t.Name, err)
	}
	return e, nil
}

func (r Repo[E]) Exists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, sq.Eq{"id": id}, "")
}

// ExistsByKey reports whether another row carries the same natural key.
func (r Repo[E]) ExistsByKey(ctx context.Context, key sq.Eq, excludeID string) (bool, error) {
	return r.exists(ctx, key, excludeID)
}

func (r Repo[E]) exists(ctx context.Context, where sq.Eq, excludeID string) (bool, error) {
	b := r.st.builder.Select("1").From(r.t.Name).Where(where).Limit(1)
	if excludeID != "" {
		b = b.Where(sq.NotEq{"id": excludeID})
	}
	row, err := r.st.queryRow(ctx, b)
	if err != nil {
		return false, err
	}
	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("exists %s: %w", r.t.Name, err)
	}
	return true, nil
}

// List returns every row in default order.
func (r Repo[E]) List(ctx context.Context) ([]*E, error) {
	rows, err := r.st.query(ctx, r.st.builder.
		Select(r.columns()...).
		From(r.t.Name).
		OrderBy(r.defaultOrder(), "id ASC"))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.t.Name, err)
	}
	return r.scanAll(rows)
}

// Page returns the requested window and the total row count.
func (r Repo[E]) Page(ctx context.Context, p PageRequest) ([]*E, int, error) {
	row, err := r.st.queryRow(ctx, r.st.builder.Select("COUNT(*)").From(r.t.Name))
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := row.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", r.t.Name, err)
	}

	dir := " ASC"
	if p.Desc {
		dir = " DESC"
	}
	col := p.Column
	if col == "" {
		col, _ = r.t.SortColumn("")
	}
	b := r.st.builder.
		Select(r.columns()...).
		From(r.t.Name).
		OrderBy(col+dir, "id ASC").
		Offset(uint64(p.Offset))
	if p.Limit > 0 {
		b = b.Limit(uint64(p.Limit))
	}
	rows, err := r.st.query(ctx, b)
	if err != nil {
		return nil, 0, fmt.Errorf("page %s: %w", r.t.Name, err)
	}
	items, err := r.scanAll(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Insert assigns a new UUID when the entity has no id yet.
func (r Repo[E]) Insert(ctx context.Context, e *E) error {
	id := r.t.ID(e)
	if *id == "" {
		*id = uuid.NewString()
	}
	values := append([]any{*id}, r.t.Values(e)...)
	if _, err := r.st.exec(ctx, r.st.builder.
		Insert(r.t.Name).
		Columns(r.columns()...).
		Values(values...)); err != nil {
		return fmt.Errorf("insert %s: %w", r.t.Name, err)
	}
	return nil
}

// Update overwrites every column of the row; model.ErrNotFound when it is gone.
func (r Repo[E]) Update(ctx context.Context, e *E) error {
	values := r.t.Values(e)
	set := make(map[string]any, len(values))
	for i, col := range r.t.Columns {
		set[col] = values[i]
	}
	res, err := r.st.exec(ctx, r.st.builder.
		Update(r.t.Name).
		SetMap(set).
		Where(sq.Eq{"id": *r.t.ID(e)}))
	if err != nil {
		return fmt.Errorf("update %s: %w", r.t.Name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete removes the row if present.
func (r Repo[E]) Delete(ctx context.Context, id string) error {
	if _, err := r.st.exec(ctx, r.st.builder.Delete(r.t.Name).Where(sq.Eq{"id": id})); err != nil {
		return fmt.Errorf("delete %s: %w", r.t.Name, err)
	}
	return nil
}

func (r Repo[E]) scanAll(rows *sql.Rows) ([]*E, error) {
	defer func() { _ = rows.Close() }()
	out := []*E{}
	for rows.Next() {
		e := new(E)
		if err := rows.Scan(r.t.Dest(e)...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.t.Name, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
