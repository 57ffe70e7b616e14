package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"listboard/internal/reorder"
)

// Row is what a table stores: an orderable item that can take its id from the database
// and stamp its own timestamps.
type Row[T any] interface {
	reorder.Orderable[T, int64]
	WithID(id int64) T
	Stamp(now time.Time) T
	Validate() error
}

// Table is one ordered list. The ord column is authoritative for order; ids come from
// AUTOINCREMENT and are never reused.
type Table[T Row[T]] struct {
	s    *Store
	name string
	kind string
}

func (t *Table[T]) Name() string { return t.name }

// List returns the current snapshot sorted by order.
func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	rows, err := t.s.db.QueryContext(ctx, `SELECT id, ord, json FROM `+t.name+` ORDER BY ord, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		it, err := scanRow[T](rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Table[T]) Get(ctx context.Context, id int64) (T, error) {
	row := t.s.db.QueryRowContext(ctx, `SELECT id, ord, json FROM `+t.name+` WHERE id = ?`, id)
	it, err := scanRow[T](row)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, fmt.Errorf("%s %d: %w", t.kind, id, ErrNotFound)
	}
	return it, err
}

// Create appends item at the end of the list and returns it with its new id and order.
func (t *Table[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	if err := item.Validate(); err != nil {
		return zero, err
	}
	tx, err := t.s.db.BeginTx(ctx, nil)
	if err != nil {
		return zero, err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM `+t.name).Scan(&n); err != nil {
		return zero, err
	}
	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `INSERT INTO `+t.name+`(ord, json, updated_at_unixms) VALUES(?, '{}', ?)`, n, now.UnixMilli())
	if err != nil {
		return zero, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return zero, err
	}
	item = item.WithID(id).WithOrder(n).Stamp(now)
	if err := t.writeJSON(ctx, tx, item, now); err != nil {
		return zero, err
	}
	if err := appendEvent(ctx, tx, t.kind+".create", t.kind, id, item); err != nil {
		return zero, err
	}
	if err := tx.Commit(); err != nil {
		return zero, err
	}
	t.s.log.Debug("created", "kind", t.kind, "id", id, "order", n)
	return item, nil
}

// Update replaces the payload of an existing item. The stored order is kept; use
// BulkReorder to change order.
func (t *Table[T]) Update(ctx context.Context, item T) (T, error) {
	var zero T
	if err := item.Validate(); err != nil {
		return zero, err
	}
	tx, err := t.s.db.BeginTx(ctx, nil)
	if err != nil {
		return zero, err
	}
	defer func() { _ = tx.Rollback() }()

	id := item.ItemID()
	var ord int
	err = tx.QueryRowContext(ctx, `SELECT ord FROM `+t.name+` WHERE id = ?`, id).Scan(&ord)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, fmt.Errorf("%s %d: %w", t.kind, id, ErrNotFound)
	}
	if err != nil {
		return zero, err
	}
	now := time.Now().UTC()
	item = item.WithOrder(ord).Stamp(now)
	if err := t.writeJSON(ctx, tx, item, now); err != nil {
		return zero, err
	}
	if err := appendEvent(ctx, tx, t.kind+".update", t.kind, id, item); err != nil {
		return zero, err
	}
	if err := tx.Commit(); err != nil {
		return zero, err
	}
	return item, nil
}

// Delete removes id and closes the gap so the remaining orders stay 0..n-1.
func (t *Table[T]) Delete(ctx context.Context, id int64) error {
	tx, err := t.s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var ord int
	err = tx.QueryRowContext(ctx, `SELECT ord FROM `+t.name+` WHERE id = ?`, id).Scan(&ord)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", t.kind, id, ErrNotFound)
	}
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+t.name+` WHERE id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE `+t.name+` SET ord = ord - 1 WHERE ord > ?`, ord); err != nil {
		return err
	}
	if err := appendEvent(ctx, tx, t.kind+".delete", t.kind, id, map[string]any{"order": ord}); err != nil {
		return err
	}
	return tx.Commit()
}

// BulkReorder stores the order of every item in one transaction. items must cover the
// stored list exactly and carry orders 0..n-1 in sequence; otherwise ErrStaleOrder and
// nothing changes.
func (t *Table[T]) BulkReorder(ctx context.Context, items []T) error {
	if err := reorder.CheckDense(items); err != nil {
		return fmt.Errorf("%s: %w: %v", t.name, ErrStaleOrder, err)
	}
	tx, err := t.s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stored, err := storedIDs(ctx, tx, t.name)
	if err != nil {
		return err
	}
	if len(stored) != len(items) {
		return fmt.Errorf("%s: %w: have %d items, stored %d", t.name, ErrStaleOrder, len(items), len(stored))
	}
	ids := make([]int64, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for _, it := range items {
		id := it.ItemID()
		if !stored[id] || seen[id] {
			return fmt.Errorf("%s: %w: unexpected %s %d", t.name, ErrStaleOrder, t.kind, id)
		}
		seen[id] = true
		ids = append(ids, id)
	}

	nowMs := time.Now().UTC().UnixMilli()
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, `UPDATE `+t.name+` SET ord = ?, updated_at_unixms = ? WHERE id = ?`, it.ItemOrder(), nowMs, it.ItemID()); err != nil {
			return err
		}
	}
	if err := appendEvent(ctx, tx, t.kind+".reorder", t.kind, 0, map[string]any{"ids": ids}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	t.s.log.Debug("reordered", "list", t.name, "ids", ids)
	return nil
}

func (t *Table[T]) writeJSON(ctx context.Context, tx *sql.Tx, item T, now time.Time) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `UPDATE `+t.name+` SET json = ?, updated_at_unixms = ? WHERE id = ?`, string(raw), now.UnixMilli(), item.ItemID())
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow[T Row[T]](r rowScanner) (T, error) {
	var zero T
	var id int64
	var ord int
	var js string
	if err := r.Scan(&id, &ord, &js); err != nil {
		return zero, err
	}
	var it T
	if err := json.Unmarshal([]byte(js), &it); err != nil {
		return zero, fmt.Errorf("decode row %d: %w", id, err)
	}
	return it.WithID(id).WithOrder(ord), nil
}

func storedIDs(ctx context.Context, tx *sql.Tx, table string) (map[int64]bool, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM `+table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[int64]bool{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}
