package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/heartmarshall/mediacard-backend/internal/adapter/postgres/lookup"
	"github.com/heartmarshall/mediacard-backend/internal/domain"
)

// Junction reads LEFT JOIN the lookup table so a dangling junction row (its
// lookup deleted out from under it, which cascade should prevent) is dropped
// instead of failing the whole read.
const genreTagsSQL = `
SELECT rg.manual, g.id, g.name, g.link, g.manual
FROM record_genre rg
LEFT JOIN genre g ON g.id = rg.genre_id
WHERE rg.record_id = $1
ORDER BY rg.id`

const idolCreditsSQL = `
SELECT ip.manual, i.id, i.name, i.link, i.manual
FROM idol_participation ip
LEFT JOIN idol i ON i.id = ip.idol_id
WHERE ip.record_id = $1
ORDER BY ip.id`

const linksSQL = `
SELECT id, record_id, name, size, date, link, star
FROM links
WHERE record_id = $1
ORDER BY id`

// assemble builds the full aggregate around a bare record row. The four
// primary lookups are mandatory: a record whose director/studio/label/series
// cannot be resolved is corrupted, and the failure surfaces as
// domain.ErrIntegrity rather than a not-found or a silent default.
func (r *Repo) assemble(ctx context.Context, rec domain.Record) (*domain.RecordAggregate, error) {
	agg := &domain.RecordAggregate{Record: rec}

	director, err := r.mustLookup(ctx, r.directors, rec.DirectorID, rec.ID)
	if err != nil {
		return nil, err
	}
	agg.Director = *director

	studio, err := r.mustLookup(ctx, r.studios, rec.StudioID, rec.ID)
	if err != nil {
		return nil, err
	}
	agg.Studio = *studio

	label, err := r.mustLookup(ctx, r.labels, rec.LabelID, rec.ID)
	if err != nil {
		return nil, err
	}
	agg.Label = *label

	series, err := r.mustLookup(ctx, r.series, rec.SeriesID, rec.ID)
	if err != nil {
		return nil, err
	}
	agg.Series = *series

	if agg.Genres, err = r.loadGenreTags(ctx, rec.ID); err != nil {
		return nil, err
	}
	if agg.Idols, err = r.loadIdolCredits(ctx, rec.ID); err != nil {
		return nil, err
	}
	if agg.Links, err = r.loadLinks(ctx, rec.ID); err != nil {
		return nil, err
	}

	return agg, nil
}

// mustLookup resolves a mandatory foreign key, converting absence into an
// integrity fault.
func (r *Repo) mustLookup(ctx context.Context, repo *lookup.Repo, id int64, recordID string) (*domain.Lookup, error) {
	l, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("record %s: %s %d unresolved: %w",
				recordID, repo.Kind().Name, id, domain.ErrIntegrity)
		}
		return nil, err
	}
	return l, nil
}

func (r *Repo) loadGenreTags(ctx context.Context, recordID string) ([]domain.GenreTag, error) {
	rows, err := r.querier(ctx).Query(ctx, genreTagsSQL, recordID)
	if err != nil {
		return nil, fmt.Errorf("load genres for record %s: %w", recordID, err)
	}
	defer rows.Close()

	result := []domain.GenreTag{}
	for rows.Next() {
		var (
			manual     bool
			id         pgtype.Int8
			name, link pgtype.Text
			rowManual  pgtype.Bool
		)
		if err := rows.Scan(&manual, &id, &name, &link, &rowManual); err != nil {
			return nil, fmt.Errorf("scan genre for record %s: %w", recordID, err)
		}
		if !id.Valid {
			continue
		}
		result = append(result, domain.GenreTag{
			Genre:  domain.Lookup{ID: id.Int64, Name: name.String, Link: link.String, Manual: rowManual.Bool},
			Manual: manual,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load genres for record %s: %w", recordID, err)
	}

	return result, nil
}

func (r *Repo) loadIdolCredits(ctx context.Context, recordID string) ([]domain.IdolCredit, error) {
	rows, err := r.querier(ctx).Query(ctx, idolCreditsSQL, recordID)
	if err != nil {
		return nil, fmt.Errorf("load idols for record %s: %w", recordID, err)
	}
	defer rows.Close()

	result := []domain.IdolCredit{}
	for rows.Next() {
		var (
			manual     bool
			id         pgtype.Int8
			name, link pgtype.Text
			rowManual  pgtype.Bool
		)
		if err := rows.Scan(&manual, &id, &name, &link, &rowManual); err != nil {
			return nil, fmt.Errorf("scan idol for record %s: %w", recordID, err)
		}
		if !id.Valid {
			continue
		}
		result = append(result, domain.IdolCredit{
			Idol:   domain.Lookup{ID: id.Int64, Name: name.String, Link: link.String, Manual: rowManual.Bool},
			Manual: manual,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load idols for record %s: %w", recordID, err)
	}

	return result, nil
}

func (r *Repo) loadLinks(ctx context.Context, recordID string) ([]domain.Link, error) {
	rows, err := r.querier(ctx).Query(ctx, linksSQL, recordID)
	if err != nil {
		return nil, fmt.Errorf("load links for record %s: %w", recordID, err)
	}
	defer rows.Close()

	result := []domain.Link{}
	for rows.Next() {
		var l domain.Link
		if err := rows.Scan(&l.ID, &l.RecordID, &l.Name, &l.Size, &l.Date, &l.Link, &l.Star); err != nil {
			return nil, fmt.Errorf("scan link for record %s: %w", recordID, err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load links for record %s: %w", recordID, err)
	}

	return result, nil
}
