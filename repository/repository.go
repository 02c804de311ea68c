package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erraggy/oaskb/oaserrors"
	"github.com/erraggy/oaskb/store"
)

// Scanner is the subset of *sql.Row / *sql.Rows a RowMapper needs to decode
// one row.
type Scanner interface {
	Scan(dest ...any) error
}

// RowMapper knows how to read and write one entity's columns against a
// fixed table. Field order returned by Columns must match the order Values
// and Scan read/write in.
type RowMapper[T any] interface {
	Table() string
	Columns() []string
	Values(item T) []any
	Scan(row Scanner) (T, error)
	IDOf(item T) int64
	// ConflictFields names the columns covered by the table's UNIQUE
	// constraint, used only to build a readable ConflictError.
	ConflictFields() []string
}

// Filter is one equality/comparison clause ANDed into a query. Field must
// name a column of the target table; Op defaults to "=" when empty.
type Filter struct {
	Field string
	Op    string
	Value any
}

// ListOptions configures List and the filtering half of GetPage.
type ListOptions struct {
	Limit   int
	Offset  int
	OrderBy string // column name, optionally suffixed " DESC"
	Filters []Filter
}

// Page is one page of a GetPage result.
type Page[T any] struct {
	Items   []T
	Page    int
	PerPage int
	Total   int
}

// Base implements the generic repository contract against a SQLite table
// described by a RowMapper[T]. Entity repositories embed *Base[T] and add
// domain-specific methods alongside it.
type Base[T any] struct {
	db     *store.DB
	mapper RowMapper[T]
}

// NewBase constructs a Base repository over db for the entity described by mapper.
func NewBase[T any](db *store.DB, mapper RowMapper[T]) *Base[T] {
	return &Base[T]{db: db, mapper: mapper}
}

var allowedOps = map[string]bool{
	"=": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
	"LIKE": true, "IN": true,
}

func filterClause(filters []Filter) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	var clauses []string
	var args []any
	for _, f := range filters {
		op := f.Op
		if op == "" {
			op = "="
		}
		if !allowedOps[strings.ToUpper(op)] {
			op = "="
		}
		clauses = append(clauses, fmt.Sprintf("%s %s ?", f.Field, op))
		args = append(args, f.Value)
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// Create inserts item and returns its assigned row id.
func (b *Base[T]) Create(ctx context.Context, item T) (int64, error) {
	release, err := b.db.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	cols := b.mapper.Columns()
	placeholders := make([]string, len(cols))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		b.mapper.Table(), strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	res, err := b.db.SQL().ExecContext(ctx, query, b.mapper.Values(item)...)
	if err != nil {
		return 0, b.classifyWriteError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &oaserrors.RepositoryError{Operation: "last_insert_id", Cause: err}
	}
	return id, nil
}

// CreateMany inserts every item inside a single transaction, rolling back
// entirely if any insert fails.
func (b *Base[T]) CreateMany(ctx context.Context, items []T) ([]int64, error) {
	if len(items) == 0 {
		return nil, nil
	}
	release, err := b.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	tx, err := b.db.SQL().BeginTx(ctx, nil)
	if err != nil {
		return nil, &oaserrors.DatabaseConnectionError{Operation: "begin create_many tx", Cause: err}
	}
	defer tx.Rollback()

	cols := b.mapper.Columns()
	placeholders := make([]string, len(cols))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		b.mapper.Table(), strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		res, err := tx.ExecContext(ctx, query, b.mapper.Values(item)...)
		if err != nil {
			return nil, b.classifyWriteError(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, &oaserrors.RepositoryError{Operation: "last_insert_id", Cause: err}
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(); err != nil {
		return nil, &oaserrors.DatabaseConnectionError{Operation: "commit create_many tx", Cause: err}
	}
	return ids, nil
}

// CreateTx inserts item using a caller-supplied transaction instead of
// acquiring its own connection, so several repositories can commit or roll
// back a multi-entity write together.
func (b *Base[T]) CreateTx(ctx context.Context, tx *sql.Tx, item T) (int64, error) {
	cols := b.mapper.Columns()
	placeholders := make([]string, len(cols))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		b.mapper.Table(), strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	res, err := tx.ExecContext(ctx, query, b.mapper.Values(item)...)
	if err != nil {
		return 0, b.classifyWriteError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &oaserrors.RepositoryError{Operation: "last_insert_id", Cause: err}
	}
	return id, nil
}

// DeleteByIDTx removes the row with the given id using a caller-supplied
// transaction, the compensating action for CreateTx during rollback.
func (b *Base[T]) DeleteByIDTx(ctx context.Context, tx *sql.Tx, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", b.mapper.Table())
	_, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return &oaserrors.RepositoryError{Operation: "delete_by_id_tx", Cause: err}
	}
	return nil
}

// GetByID returns the row with the given id, or ResourceNotFoundError if
// none exists.
func (b *Base[T]) GetByID(ctx context.Context, id int64) (T, error) {
	var zero T
	release, err := b.db.Acquire(ctx)
	if err != nil {
		return zero, err
	}
	defer release()

	query := fmt.Sprintf("SELECT id, %s FROM %s WHERE id = ?",
		strings.Join(b.mapper.Columns(), ", "), b.mapper.Table())
	row := b.db.SQL().QueryRowContext(ctx, query, id)
	item, err := b.mapper.Scan(row)
	if err == sql.ErrNoRows {
		return zero, &oaserrors.ResourceNotFoundError{ResourceType: b.mapper.Table(), Identifier: fmt.Sprintf("id=%d", id)}
	}
	if err != nil {
		return zero, &oaserrors.RepositoryError{Operation: "get_by_id", Cause: err}
	}
	return item, nil
}

// GetByIDOrRaise is an alias for GetByID kept for contract parity: both
// forms are "or raise NotFound" in Go, since there is no silent-nil variant.
func (b *Base[T]) GetByIDOrRaise(ctx context.Context, id int64) (T, error) {
	return b.GetByID(ctx, id)
}

// Update overwrites every column of the row identified by item's own id,
// as reported by the mapper's IDOf.
func (b *Base[T]) Update(ctx context.Context, item T) error {
	return b.UpdateByID(ctx, b.mapper.IDOf(item), item)
}

// UpdateByID overwrites every column of the row with the given id using
// item's field values, ignoring item's own id.
func (b *Base[T]) UpdateByID(ctx context.Context, id int64, item T) error {
	release, err := b.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	cols := b.mapper.Columns()
	assignments := make([]string, len(cols))
	for i, c := range cols {
		assignments[i] = c + " = ?"
	}
	args := append(b.mapper.Values(item), id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", b.mapper.Table(), strings.Join(assignments, ", "))

	res, err := b.db.SQL().ExecContext(ctx, query, args...)
	if err != nil {
		return b.classifyWriteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &oaserrors.RepositoryError{Operation: "update_by_id", Cause: err}
	}
	if n == 0 {
		return &oaserrors.ResourceNotFoundError{ResourceType: b.mapper.Table(), Identifier: fmt.Sprintf("id=%d", id)}
	}
	return nil
}

// Delete removes the row whose id matches item's own id.
func (b *Base[T]) Delete(ctx context.Context, item T) error {
	return b.DeleteByID(ctx, b.mapper.IDOf(item))
}

// DeleteByID removes the row with the given id.
func (b *Base[T]) DeleteByID(ctx context.Context, id int64) error {
	release, err := b.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", b.mapper.Table())
	res, err := b.db.SQL().ExecContext(ctx, query, id)
	if err != nil {
		return &oaserrors.RepositoryError{Operation: "delete_by_id", Cause: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &oaserrors.RepositoryError{Operation: "delete_by_id", Cause: err}
	}
	if n == 0 {
		return &oaserrors.ResourceNotFoundError{ResourceType: b.mapper.Table(), Identifier: fmt.Sprintf("id=%d", id)}
	}
	return nil
}

// List returns rows matching opts.Filters, ordered and paged per opts.
func (b *Base[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	release, err := b.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	where, args := filterClause(opts.Filters)
	query := fmt.Sprintf("SELECT id, %s FROM %s%s", strings.Join(b.mapper.Columns(), ", "), b.mapper.Table(), where)
	if opts.OrderBy != "" {
		query += " ORDER BY " + opts.OrderBy
	}
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}
	if opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", opts.Offset)
	}

	rows, err := b.db.SQL().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &oaserrors.RepositoryError{Operation: "list", Cause: err}
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := b.mapper.Scan(rows)
		if err != nil {
			return nil, &oaserrors.RepositoryError{Operation: "list_scan", Cause: err}
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Count returns the number of rows matching filters.
func (b *Base[T]) Count(ctx context.Context, filters []Filter) (int, error) {
	release, err := b.db.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	where, args := filterClause(filters)
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.mapper.Table(), where)
	var n int
	if err := b.db.SQL().QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, &oaserrors.RepositoryError{Operation: "count", Cause: err}
	}
	return n, nil
}

// Exists reports whether any row matches filters.
func (b *Base[T]) Exists(ctx context.Context, filters []Filter) (bool, error) {
	n, err := b.Count(ctx, filters)
	return n > 0, err
}

// GetPage returns one 1-indexed page of rows matching filters.
func (b *Base[T]) GetPage(ctx context.Context, page, perPage int, orderBy string, filters []Filter) (Page[T], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	total, err := b.Count(ctx, filters)
	if err != nil {
		return Page[T]{}, err
	}
	items, err := b.List(ctx, ListOptions{
		Limit:   perPage,
		Offset:  (page - 1) * perPage,
		OrderBy: orderBy,
		Filters: filters,
	})
	if err != nil {
		return Page[T]{}, err
	}
	return Page[T]{Items: items, Page: page, PerPage: perPage, Total: total}, nil
}

// classifyWriteError turns a SQLite UNIQUE-constraint failure into a
// ConflictError, and anything else into a generic RepositoryError.
func (b *Base[T]) classifyWriteError(err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return &oaserrors.ConflictError{
			ResourceType: b.mapper.Table(),
			Identifier:   strings.Join(b.mapper.ConflictFields(), ","),
			Message:      err.Error(),
		}
	}
	return &oaserrors.RepositoryError{Operation: "write", Cause: err}
}
