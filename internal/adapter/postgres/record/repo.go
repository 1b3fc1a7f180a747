// Package record implements persistence for the central record entity and the
// assembly of its read model: the record row joined with its four resolved
// lookups, genre and idol junctions, and links.
package record

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mediacard-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mediacard-backend/internal/adapter/postgres/lookup"
	"github.com/heartmarshall/mediacard-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides record persistence backed by PostgreSQL. It owns one lookup
// repository per kind for candidate resolution on create and for foreign-key
// resolution during assembly.
type Repo struct {
	pool  *pgxpool.Pool
	clock clockwork.Clock

	directors *lookup.Repo
	studios   *lookup.Repo
	labels    *lookup.Repo
	series    *lookup.Repo
	genres    *lookup.Repo
	idols     *lookup.Repo
}

// New creates a record repository. The clock supplies "today" for the
// create_time/update_time stamps; production passes clockwork.NewRealClock.
func New(pool *pgxpool.Pool, clock clockwork.Clock) *Repo {
	return &Repo{
		pool:      pool,
		clock:     clock,
		directors: lookup.New(pool, lookup.Director),
		studios:   lookup.New(pool, lookup.Studio),
		labels:    lookup.New(pool, lookup.Label),
		series:    lookup.New(pool, lookup.Series),
		genres:    lookup.New(pool, lookup.Genre),
		idols:     lookup.New(pool, lookup.Idol),
	}
}

func (r *Repo) querier(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.pool)
}

// today returns the clock's current day at UTC midnight, matching the DATE
// columns it is written to.
func (r *Repo) today() time.Time {
	now := r.clock.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

var recordColumns = []string{
	"id", "title", "date", "duration", "director_id", "studio_id", "label_id", "series_id",
	"has_links", "permission", "local_img_count", "create_time", "update_time", "creator", "modified_by",
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns the fully assembled aggregate for one record.
// Returns domain.ErrNotFound if the record row does not exist and
// domain.ErrIntegrity if one of its four lookups fails to resolve.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.RecordAggregate, error) {
	row, err := r.getRow(ctx, id)
	if err != nil {
		return nil, err
	}

	return r.assemble(ctx, *row)
}

// List returns every record, fully assembled.
func (r *Repo) List(ctx context.Context) ([]domain.RecordAggregate, error) {
	return r.Find(ctx, domain.RecordFilter{})
}

// Find returns assembled aggregates for every record matching the filter.
// Assembly runs per record; no batching. The per-record loads keep the
// integrity semantics of GetByID for each row.
func (r *Repo) Find(ctx context.Context, filter domain.RecordFilter) ([]domain.RecordAggregate, error) {
	b := psql.Select(recordColumns...).From("record")

	if id := deref(filter.ID); id != "" {
		b = b.Where(sq.Like{"id": "%" + id + "%"})
	}
	if title := deref(filter.Title); title != "" {
		b = b.Where(sq.Like{"title": "%" + title + "%"})
	}
	if filter.DirectorID != nil {
		b = b.Where(sq.Eq{"director_id": *filter.DirectorID})
	}
	if filter.StudioID != nil {
		b = b.Where(sq.Eq{"studio_id": *filter.StudioID})
	}
	if filter.LabelID != nil {
		b = b.Where(sq.Eq{"label_id": *filter.LabelID})
	}
	if filter.SeriesID != nil {
		b = b.Where(sq.Eq{"series_id": *filter.SeriesID})
	}

	query, args, err := b.OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build record query: %w", err)
	}

	rows, err := r.querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}

	bare, err := scanRecords(rows)
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}

	result := make([]domain.RecordAggregate, 0, len(bare))
	for _, rec := range bare {
		agg, err := r.assemble(ctx, rec)
		if err != nil {
			return nil, err
		}
		result = append(result, *agg)
	}

	return result, nil
}

// getRow fetches the bare record row without relations.
func (r *Repo) getRow(ctx context.Context, id string) (*domain.Record, error) {
	query := `SELECT ` + strings.Join(recordColumns, ", ") + ` FROM record WHERE id = $1`

	rec, err := scanRecord(r.querier(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, postgres.MapError(err, "record", id)
	}

	return rec, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a record with its genre/idol junctions and links, resolving
// nested lookup candidates through dedupe-or-create. Must run inside a
// transaction (RunInTx). If a record with the id already exists the call is a
// no-op returning the existing id.
func (r *Repo) Create(ctx context.Context, p domain.RecordCreateParams) (string, error) {
	q := r.querier(ctx)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM record WHERE id = $1)`, p.ID).Scan(&exists); err != nil {
		return "", fmt.Errorf("record %s exists check: %w", p.ID, err)
	}
	if exists {
		return p.ID, nil
	}

	directorID, err := r.resolve(ctx, r.directors, p.Director)
	if err != nil {
		return "", err
	}
	studioID, err := r.resolve(ctx, r.studios, p.Studio)
	if err != nil {
		return "", err
	}
	labelID, err := r.resolve(ctx, r.labels, p.Label)
	if err != nil {
		return "", err
	}
	seriesID, err := r.resolve(ctx, r.series, p.Series)
	if err != nil {
		return "", err
	}

	today := r.today()
	const insertRecord = `
INSERT INTO record (id, title, date, duration, director_id, studio_id, label_id, series_id,
	has_links, permission, local_img_count, create_time, update_time, creator, modified_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err = q.Exec(ctx, insertRecord,
		p.ID, p.Title, p.Date, p.Duration, directorID, studioID, labelID, seriesID,
		p.HasLinks, p.Permission, p.LocalImgCount, today, today, p.Creator, p.ModifiedBy,
	)
	if err != nil {
		return "", postgres.MapError(err, "record", p.ID)
	}

	for _, candidate := range p.Genres {
		genreID, err := r.genres.GetOrCreate(ctx, candidate)
		if err != nil {
			return "", err
		}
		_, err = q.Exec(ctx,
			`INSERT INTO record_genre (record_id, genre_id, manual) VALUES ($1, $2, FALSE)
			 ON CONFLICT (record_id, genre_id) DO NOTHING`,
			p.ID, genreID,
		)
		if err != nil {
			return "", postgres.MapError(err, "record_genre", p.ID)
		}
	}

	for _, candidate := range p.Idols {
		idolID, err := r.idols.GetOrCreate(ctx, candidate)
		if err != nil {
			return "", err
		}
		_, err = q.Exec(ctx,
			`INSERT INTO idol_participation (record_id, idol_id, manual) VALUES ($1, $2, FALSE)
			 ON CONFLICT (record_id, idol_id) DO NOTHING`,
			p.ID, idolID,
		)
		if err != nil {
			return "", postgres.MapError(err, "idol_participation", p.ID)
		}
	}

	for _, link := range p.Links {
		if err := r.insertLink(ctx, p.ID, link); err != nil {
			return "", err
		}
	}

	return p.ID, nil
}

// resolve turns a candidate into a lookup id, using the seeded default row
// when no candidate was supplied.
func (r *Repo) resolve(ctx context.Context, repo *lookup.Repo, candidate *domain.LookupCandidate) (int64, error) {
	if candidate == nil {
		return domain.DefaultLookupID, nil
	}
	return repo.GetOrCreate(ctx, *candidate)
}

func (r *Repo) insertLink(ctx context.Context, recordID string, p domain.RecordLinkParams) error {
	size := decimal.NewFromInt(-1)
	if p.Size != nil {
		size = *p.Size
	}
	date := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	if p.Date != nil {
		date = *p.Date
	}
	url := ""
	if p.Link != nil {
		url = *p.Link
	}
	star := false
	if p.Star != nil {
		star = *p.Star
	}

	_, err := r.querier(ctx).Exec(ctx,
		`INSERT INTO links (record_id, name, size, date, link, star) VALUES ($1, $2, $3, $4, $5, $6)`,
		recordID, p.Name, size, date, url, star,
	)
	if err != nil {
		return postgres.MapError(err, "link", recordID)
	}

	return nil
}

// Update overwrites the record's scalar and foreign-key fields, stamps
// update_time with today, and returns the re-assembled aggregate read through
// the same querier, so inside a transaction the caller sees their own write.
// Returns domain.ErrNotFound if the record does not exist.
func (r *Repo) Update(ctx context.Context, id string, p domain.RecordUpdateParams) (*domain.RecordAggregate, error) {
	existing, err := r.getRow(ctx, id)
	if err != nil {
		return nil, err
	}

	const update = `
UPDATE record SET title = $1, date = $2, duration = $3,
	director_id = $4, studio_id = $5, label_id = $6, series_id = $7,
	has_links = $8, permission = $9, local_img_count = $10,
	update_time = $11, modified_by = $12
WHERE id = $13`

	today := r.today()
	_, err = r.querier(ctx).Exec(ctx, update,
		p.Title, p.Date, p.Duration,
		p.DirectorID, p.StudioID, p.LabelID, p.SeriesID,
		p.HasLinks, p.Permission, p.LocalImgCount,
		today, p.ModifiedBy, id,
	)
	if err != nil {
		return nil, postgres.MapError(err, "record", id)
	}

	updated := domain.Record{
		ID:            id,
		Title:         p.Title,
		Date:          p.Date,
		Duration:      p.Duration,
		DirectorID:    p.DirectorID,
		StudioID:      p.StudioID,
		LabelID:       p.LabelID,
		SeriesID:      p.SeriesID,
		HasLinks:      p.HasLinks,
		Permission:    p.Permission,
		LocalImgCount: p.LocalImgCount,
		CreateTime:    existing.CreateTime,
		UpdateTime:    today,
		Creator:       existing.Creator,
		ModifiedBy:    p.ModifiedBy,
	}

	return r.assemble(ctx, updated)
}

// Delete removes the record row; junction rows and links go with it via
// cascade. Returns domain.ErrNotFound if no row was removed.
func (r *Repo) Delete(ctx context.Context, id string) error {
	tag, err := r.querier(ctx).Exec(ctx, `DELETE FROM record WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "record", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning
// ---------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.Record, error) {
	var rec domain.Record
	err := row.Scan(
		&rec.ID, &rec.Title, &rec.Date, &rec.Duration,
		&rec.DirectorID, &rec.StudioID, &rec.LabelID, &rec.SeriesID,
		&rec.HasLinks, &rec.Permission, &rec.LocalImgCount,
		&rec.CreateTime, &rec.UpdateTime, &rec.Creator, &rec.ModifiedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func scanRecords(rows pgx.Rows) ([]domain.Record, error) {
	var result []domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.Record{}
	}

	return result, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
