package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// KVRepo is a small string key-value store.
type KVRepo interface {
	// Get returns the value stored under name. ok is false when absent.
	Get(ctx context.Context, name string) (value string, ok bool, err error)

	// Set stores value under name, replacing any previous value.
	Set(ctx context.Context, name, value string) error

	// Delete removes name. Deleting an absent key is not an error.
	Delete(ctx context.Context, name string) error

	// Keys lists all names starting with prefix, in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// kvRepo implements KVRepo with the ent SQL builder.
type kvRepo struct {
	drv *entsql.Driver
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *kvRepo) Get(ctx context.Context, name string) (string, bool, error) {
	b := builder()
	query, args := b.Select("value").
		From(b.Table(kvTable)).
		Where(entsql.EQ("name", name)).
		Limit(1).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return "", false, fmt.Errorf("query %q: %w", name, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", false, fmt.Errorf("query %q: %w", name, err)
		}
		return "", false, nil
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return "", false, fmt.Errorf("scan %q: %w", name, err)
	}
	return value, true, nil
}

func (r *kvRepo) Set(ctx context.Context, name, value string) error {
	query, args := builder().Insert(kvTable).
		Columns("name", "value", "updated_at").
		Values(name, value, time.Now().Unix()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("set %q: %w", name, err)
	}
	return nil
}

func (r *kvRepo) Delete(ctx context.Context, name string) error {
	query, args := builder().Delete(kvTable).
		Where(entsql.EQ("name", name)).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	return nil
}

func (r *kvRepo) Keys(ctx context.Context, prefix string) ([]string, error) {
	b := builder()
	sel := b.Select("name").From(b.Table(kvTable))
	if prefix != "" {
		sel = sel.Where(entsql.HasPrefix("name", prefix))
	}
	query, args := sel.OrderBy("name").Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("list keys %q: %w", prefix, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list keys %q: %w", prefix, err)
	}
	return names, nil
}
