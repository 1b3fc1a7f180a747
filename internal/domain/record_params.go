package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordCreateParams is the create-record payload. The id is chosen by the
// caller. The four primary lookups arrive as candidates without ids; each one
// is resolved through dedupe-or-create, or falls back to the seeded default
// row when absent. Genres, idols, and links are created in the same
// transaction as the record row.
type RecordCreateParams struct {
	ID            string
	Title         string
	Date          time.Time
	Duration      int32
	Director      *LookupCandidate
	Studio        *LookupCandidate
	Label         *LookupCandidate
	Series        *LookupCandidate
	Genres        []LookupCandidate
	Idols         []LookupCandidate
	Links         []RecordLinkParams
	HasLinks      bool
	Permission    int32
	LocalImgCount int32
	Creator       string
	ModifiedBy    string
}

// RecordLinkParams describes one download link in a create payload.
// Absent fields get the storage defaults: size -1, epoch date, empty link,
// star false.
type RecordLinkParams struct {
	Name string
	Size *decimal.Decimal
	Date *time.Time
	Link *string
	Star *bool
}

// RecordUpdateParams overwrites every mutable field of a record row. Unlike
// create, the foreign keys are plain ids here: the caller has already
// resolved any nested candidates.
type RecordUpdateParams struct {
	Title         string
	Date          time.Time
	Duration      int32
	DirectorID    int64
	StudioID      int64
	LabelID       int64
	SeriesID      int64
	HasLinks      bool
	Permission    int32
	LocalImgCount int32
	ModifiedBy    string
}
