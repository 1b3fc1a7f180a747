// Package lookup implements the repository for the six shared reference
// tables (director, studio, label, series, genre, idol). All six share one
// schema (id, name, link, manual) and one behavior: rows are deduplicated
// by the natural key (name, link, manual) instead of carrying a client-visible
// id through create payloads.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/mediacard-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mediacard-backend/internal/domain"
	"github.com/heartmarshall/mediacard-backend/internal/pagination"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides persistence for a single lookup kind.
type Repo struct {
	pool *pgxpool.Pool
	kind Kind
}

// New creates a lookup repository for the given kind.
func New(pool *pgxpool.Pool, kind Kind) *Repo {
	return &Repo{pool: pool, kind: kind}
}

// Kind returns the kind this repository serves.
func (r *Repo) Kind() Kind {
	return r.kind
}

func (r *Repo) querier(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.pool)
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a lookup row by primary key.
// Returns domain.ErrNotFound if no row exists.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Lookup, error) {
	query, args, err := psql.
		Select("id", "name", "link", "manual").
		From(r.kind.Table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", r.kind.Name, err)
	}

	var l domain.Lookup
	row := r.querier(ctx).QueryRow(ctx, query, args...)
	if err := row.Scan(&l.ID, &l.Name, &l.Link, &l.Manual); err != nil {
		return nil, postgres.MapError(err, string(r.kind.Name), id)
	}

	return &l, nil
}

// List returns every row of the table ordered by id.
// Returns an empty slice (not nil) for an empty table.
func (r *Repo) List(ctx context.Context) ([]domain.Lookup, error) {
	return r.Find(ctx, domain.LookupFilter{})
}

// Find returns rows matching the filter, ordered by id. Name and Link are
// case-sensitive substring matches; blank filter values are ignored.
func (r *Repo) Find(ctx context.Context, filter domain.LookupFilter) ([]domain.Lookup, error) {
	query, args, err := r.filtered(filter).OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", r.kind.Name, err)
	}

	rows, err := r.querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.kind.Name, err)
	}
	defer rows.Close()

	result, err := scanLookups(rows)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.kind.Name, err)
	}

	return result, nil
}

// FindPage returns one page of rows matching the filter, plus the total count
// and next/previous fragments. The offset is aligned down to a page boundary.
func (r *Repo) FindPage(ctx context.Context, filter domain.LookupFilter, q pagination.Query) (pagination.Page[domain.Lookup], error) {
	var zero pagination.Page[domain.Lookup]

	countQuery, countArgs, err := r.filteredColumns(filter, "count(*)").ToSql()
	if err != nil {
		return zero, fmt.Errorf("build %s count query: %w", r.kind.Name, err)
	}

	var total int64
	if err := r.querier(ctx).QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return zero, fmt.Errorf("count %s: %w", r.kind.Name, err)
	}

	limit, offset := q.PageBounds()
	query, args, err := r.filtered(filter).
		OrderBy("id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return zero, fmt.Errorf("build %s page query: %w", r.kind.Name, err)
	}

	rows, err := r.querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return zero, fmt.Errorf("page %s: %w", r.kind.Name, err)
	}
	defer rows.Close()

	result, err := scanLookups(rows)
	if err != nil {
		return zero, fmt.Errorf("page %s: %w", r.kind.Name, err)
	}

	return pagination.NewPage(result, total, q), nil
}

// filtered builds the base SELECT with the filter applied.
func (r *Repo) filtered(filter domain.LookupFilter) sq.SelectBuilder {
	return r.filteredColumns(filter, "id", "name", "link", "manual")
}

func (r *Repo) filteredColumns(filter domain.LookupFilter, columns ...string) sq.SelectBuilder {
	b := psql.Select(columns...).From(r.kind.Table)

	if filter.ID != nil {
		b = b.Where(sq.Eq{"id": *filter.ID})
	}
	if name := deref(filter.Name); strings.TrimSpace(name) != "" {
		b = b.Where(sq.Like{"name": "%" + name + "%"})
	}
	if link := deref(filter.Link); strings.TrimSpace(link) != "" {
		b = b.Where(sq.Like{"link": "%" + link + "%"})
	}

	return b
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// GetOrCreate resolves a candidate to a row id, inserting only when no row
// with the exact natural key (name, link, manual) exists. Link defaults to ""
// and Manual to false. Calling it twice with identical input returns the same
// id both times, which is what keeps repeated nested payloads from piling up
// duplicate rows.
//
// There is no unique index backing this check: two concurrent identical
// creates can both insert, and the duplicates converge on the first
// subsequent Update. That race is a documented property of the catalog, not
// an oversight.
func (r *Repo) GetOrCreate(ctx context.Context, candidate domain.LookupCandidate) (int64, error) {
	key := candidate.Key()
	q := r.querier(ctx)

	query, args, err := psql.
		Select("id").
		From(r.kind.Table).
		Where(sq.Eq{"name": key.Name, "link": key.Link, "manual": key.Manual}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s dedupe query: %w", r.kind.Name, err)
	}

	var id int64
	err = q.QueryRow(ctx, query, args...).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("dedupe %s: %w", r.kind.Name, err)
	}

	insert := fmt.Sprintf(
		`INSERT INTO %s (name, link, manual) VALUES ($1, $2, $3) RETURNING id`,
		r.kind.Table,
	)
	if err := q.QueryRow(ctx, insert, key.Name, key.Link, key.Manual).Scan(&id); err != nil {
		return 0, postgres.MapError(err, string(r.kind.Name), key.Name)
	}

	return id, nil
}

// Update applies a partial patch to a row. After merging the patch onto the
// current values it checks whether a DIFFERENT row already holds the
// resulting natural key. If so, the row being edited is deleted and the
// pre-existing row is returned: updates never produce duplicate keys, and
// callers must not assume the returned id equals the one they passed in.
// Returns domain.ErrNotFound if id does not exist.
func (r *Repo) Update(ctx context.Context, id int64, patch domain.LookupPatch) (*domain.Lookup, error) {
	q := r.querier(ctx)

	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := existing.Key()
	if patch.Name != nil {
		key.Name = *patch.Name
	}
	if patch.Link != nil {
		key.Link = *patch.Link
	}
	if patch.Manual != nil {
		key.Manual = *patch.Manual
	}

	query, args, err := psql.
		Select("id", "name", "link", "manual").
		From(r.kind.Table).
		Where(sq.Eq{"name": key.Name, "link": key.Link, "manual": key.Manual}).
		Where(sq.NotEq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s collision query: %w", r.kind.Name, err)
	}

	var other domain.Lookup
	err = q.QueryRow(ctx, query, args...).Scan(&other.ID, &other.Name, &other.Link, &other.Manual)
	switch {
	case err == nil:
		// Merge collision: discard the row being edited, keep the survivor.
		del := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.kind.Table)
		if _, err := q.Exec(ctx, del, id); err != nil {
			return nil, postgres.MapError(err, string(r.kind.Name), id)
		}
		return &other, nil
	case errors.Is(err, pgx.ErrNoRows):
		// No collision, update in place.
	default:
		return nil, fmt.Errorf("%s collision check: %w", r.kind.Name, err)
	}

	update := fmt.Sprintf(
		`UPDATE %s SET name = $1, link = $2, manual = $3 WHERE id = $4`,
		r.kind.Table,
	)
	if _, err := q.Exec(ctx, update, key.Name, key.Link, key.Manual, id); err != nil {
		return nil, postgres.MapError(err, string(r.kind.Name), id)
	}

	return &domain.Lookup{ID: id, Name: key.Name, Link: key.Link, Manual: key.Manual}, nil
}

// Delete removes a row. Records referencing it fall back to the seeded
// default via ON DELETE SET DEFAULT; junction rows cascade.
// Returns domain.ErrNotFound if no row was removed.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	del := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.kind.Table)

	tag, err := r.querier(ctx).Exec(ctx, del, id)
	if err != nil {
		return postgres.MapError(err, string(r.kind.Name), id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", r.kind.Name, id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Statistics
// ---------------------------------------------------------------------------

// RecordCounts returns every row paired with the number of records using it,
// sorted by count descending. Rows with zero records are included.
//
// One count query runs per row. Catalog tables are small, so this stays
// acceptable; revisit with a GROUP BY join if they ever are not.
func (r *Repo) RecordCounts(ctx context.Context) ([]domain.LookupCount, error) {
	rows, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	q := r.querier(ctx)
	countQuery := fmt.Sprintf(
		`SELECT count(*) FROM %s WHERE %s = $1`,
		r.kind.countTable, r.kind.countColumn,
	)

	result := make([]domain.LookupCount, 0, len(rows))
	for _, row := range rows {
		var count int64
		if err := q.QueryRow(ctx, countQuery, row.ID).Scan(&count); err != nil {
			return nil, fmt.Errorf("count records for %s %d: %w", r.kind.Name, row.ID, err)
		}
		result = append(result, domain.LookupCount{ID: row.ID, Name: row.Name, Count: count})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	return result, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func scanLookups(rows pgx.Rows) ([]domain.Lookup, error) {
	var result []domain.Lookup
	for rows.Next() {
		var l domain.Lookup
		if err := rows.Scan(&l.ID, &l.Name, &l.Link, &l.Manual); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.Lookup{}
	}

	return result, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
