package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// LinkTable describes a child table owned by a parent row. Rows keep insertion order
// through an implicit position column.
type LinkTable[L any] struct {
	Name    string
	Parent  string
	Columns []string
	Values  func(l *L) []any
	Dest    func(l *L) []any
}

// Links manages the child rows of one LinkTable.
type Links[L any] struct {
	st *Store
	t  *LinkTable[L]
}

func NewLinks[L any](st *Store, t *LinkTable[L]) Links[L] {
	return Links[L]{st: st, t: t}
}

func (l Links[L]) List(ctx context.Context, parentID string) ([]L, error) {
	rows, err := l.st.query(ctx, l.st.builder.
		Select(l.t.Columns...).
		From(l.t.Name).
		Where(sq.Eq{l.t.Parent: parentID}).
		OrderBy("position ASC"))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", l.t.Name, err)
	}
	defer func() { _ = rows.Close() }()
	out := []L{}
	for rows.Next() {
		var item L
		if err := rows.Scan(l.t.Dest(&item)...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", l.t.Name, err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Replace swaps the full child set of a parent. Callers run it inside InTx.
func (l Links[L]) Replace(ctx context.Context, parentID string, items []L) error {
	if err := l.DeleteParent(ctx, parentID); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	cols := append([]string{l.t.Parent, "position"}, l.t.Columns...)
	b := l.st.builder.Insert(l.t.Name).Columns(cols...)
	for i := range items {
		b = b.Values(append([]any{parentID, i}, l.t.Values(&items[i])...)...)
	}
	if _, err := l.st.exec(ctx, b); err != nil {
		return fmt.Errorf("insert %s: %w", l.t.Name, err)
	}
	return nil
}

func (l Links[L]) DeleteParent(ctx context.Context, parentID string) error {
	if _, err := l.st.exec(ctx, l.st.builder.Delete(l.t.Name).Where(sq.Eq{l.t.Parent: parentID})); err != nil {
		return fmt.Errorf("delete %s: %w", l.t.Name, err)
	}
	return nil
}
