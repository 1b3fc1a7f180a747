package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueName returns a name with a unique suffix, for lookup rows that must
// not collide with rows seeded by parallel tests.
func UniqueName(prefix string) string {
	return prefix + "-" + uniqueSuffix()
}

// SeedLookup inserts one row into the given lookup table (director, studio,
// label, series, genre, or idol) and returns its id.
func SeedLookup(t *testing.T, pool *pgxpool.Pool, table, name, link string, manual bool) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO `+table+` (name, link, manual) VALUES ($1, $2, $3) RETURNING id`,
		name, link, manual,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedLookup insert %s: %v", table, err)
	}

	return id
}

// SeedRecord inserts a record row with a unique id and the given foreign keys.
// Scalar fields get fixed test values. Returns the filled domain.Record.
func SeedRecord(t *testing.T, pool *pgxpool.Pool, directorID, studioID, labelID, seriesID int64) domain.Record {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	today := time.Now().UTC().Truncate(24 * time.Hour)
	rec := domain.Record{
		ID:            "REC-" + suffix,
		Title:         "Record " + suffix,
		Date:          today,
		Duration:      120,
		DirectorID:    directorID,
		StudioID:      studioID,
		LabelID:       labelID,
		SeriesID:      seriesID,
		HasLinks:      false,
		Permission:    0,
		LocalImgCount: 0,
		CreateTime:    today,
		UpdateTime:    today,
		Creator:       "seed",
		ModifiedBy:    "seed",
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO record (id, title, date, duration, director_id, studio_id, label_id, series_id,
		                     has_links, permission, local_img_count, create_time, update_time, creator, modified_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		rec.ID, rec.Title, rec.Date, rec.Duration, rec.DirectorID, rec.StudioID, rec.LabelID, rec.SeriesID,
		rec.HasLinks, rec.Permission, rec.LocalImgCount, rec.CreateTime, rec.UpdateTime, rec.Creator, rec.ModifiedBy,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRecord insert record: %v", err)
	}

	return rec
}

// SeedGenreTag attaches a genre to a record with the given manual flag.
func SeedGenreTag(t *testing.T, pool *pgxpool.Pool, recordID string, genreID int64, manual bool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO record_genre (record_id, genre_id, manual) VALUES ($1, $2, $3)`,
		recordID, genreID, manual,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedGenreTag insert: %v", err)
	}
}

// SeedIdolCredit attaches an idol to a record with the given manual flag.
func SeedIdolCredit(t *testing.T, pool *pgxpool.Pool, recordID string, idolID int64, manual bool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO idol_participation (record_id, idol_id, manual) VALUES ($1, $2, $3)`,
		recordID, idolID, manual,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedIdolCredit insert: %v", err)
	}
}

// SeedLink inserts a download link for a record and returns it.
func SeedLink(t *testing.T, pool *pgxpool.Pool, recordID, name string) domain.Link {
	t.Helper()
	ctx := context.Background()

	link := domain.Link{
		RecordID: recordID,
		Name:     name,
		Size:     decimal.NewFromFloat(1.5),
		Date:     time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Link:     "https://example.com/" + name,
		Star:     false,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO links (record_id, name, size, date, link, star)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		link.RecordID, link.Name, link.Size, link.Date, link.Link, link.Star,
	).Scan(&link.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedLink insert: %v", err)
	}

	return link
}

// ExecWithoutTriggers runs a statement with session_replication_role set to
// replica, which disables foreign key actions for that session. Tests use it
// to manufacture dangling references that the schema normally prevents.
// The test container user is a superuser, so the SET is permitted.
func ExecWithoutTriggers(t *testing.T, pool *pgxpool.Pool, sql string, args ...any) {
	t.Helper()
	ctx := context.Background()

	conn, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("testhelper: ExecWithoutTriggers acquire: %v", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `SET session_replication_role = replica`); err != nil {
		t.Fatalf("testhelper: ExecWithoutTriggers set role: %v", err)
	}
	if _, err := conn.Exec(ctx, sql, args...); err != nil {
		t.Fatalf("testhelper: ExecWithoutTriggers exec: %v", err)
	}
	if _, err := conn.Exec(ctx, `SET session_replication_role = DEFAULT`); err != nil {
		t.Fatalf("testhelper: ExecWithoutTriggers reset role: %v", err)
	}
}
