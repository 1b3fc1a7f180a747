// Package domain holds the core entities of the media card catalog and the
// errors shared across all layers.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LookupKind names one of the six shared reference entity families.
type LookupKind string

const (
	KindDirector LookupKind = "director"
	KindStudio   LookupKind = "studio"
	KindLabel    LookupKind = "label"
	KindSeries   LookupKind = "series"
	KindGenre    LookupKind = "genre"
	KindIdol     LookupKind = "idol"
)

// DefaultLookupID is the id of the seeded fallback row present in every
// lookup table. Record foreign keys snap back to it when their target is
// deleted, so it must never be removed.
const DefaultLookupID int64 = 1

// Lookup is one row of a lookup table. All six kinds share this shape.
// Manual marks entities a person entered by hand rather than a scraper.
type Lookup struct {
	ID     int64
	Name   string
	Link   string
	Manual bool
}

// LookupKey is the natural key that deduplication operates on. Two rows of
// the same kind are "the same entity" exactly when their keys are equal.
type LookupKey struct {
	Name   string
	Link   string
	Manual bool
}

// Key returns the row's natural key.
func (l Lookup) Key() LookupKey {
	return LookupKey{Name: l.Name, Link: l.Link, Manual: l.Manual}
}

// LookupCandidate names a lookup entity without an id, the way record
// payloads refer to them. Nil fields take the key defaults: empty link,
// manual false.
type LookupCandidate struct {
	Name   string
	Link   *string
	Manual *bool
}

// Key returns the natural key the candidate resolves by.
func (c LookupCandidate) Key() LookupKey {
	key := LookupKey{Name: c.Name}
	if c.Link != nil {
		key.Link = *c.Link
	}
	if c.Manual != nil {
		key.Manual = *c.Manual
	}
	return key
}

// LookupPatch is a partial update of a lookup row. Nil fields are left
// unchanged.
type LookupPatch struct {
	Name   *string
	Link   *string
	Manual *bool
}

// LookupCount pairs a lookup row with the number of records referencing it.
type LookupCount struct {
	ID    int64
	Name  string
	Count int64
}

// Record is the bare media card row. The four foreign keys always resolve:
// deleting a lookup repoints them at the seeded default instead of orphaning
// the record.
type Record struct {
	ID            string
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
	CreateTime    time.Time
	UpdateTime    time.Time
	Creator       string
	ModifiedBy    string
}

// GenreTag is one genre attached to a record. Manual is the junction's own
// flag, independent of the genre row's Manual.
type GenreTag struct {
	Genre  Lookup
	Manual bool
}

// IdolCredit is one idol attached to a record.
type IdolCredit struct {
	Idol   Lookup
	Manual bool
}

// Link is one download link belonging to a record.
type Link struct {
	ID       int64
	RecordID string
	Name     string
	Size     decimal.Decimal
	Date     time.Time
	Link     string
	Star     bool
}

// RecordAggregate is the full read model: the record row with its four
// lookups resolved and its associations loaded. Relation slices are always
// non-nil.
type RecordAggregate struct {
	Record

	Director Lookup
	Studio   Lookup
	Label    Lookup
	Series   Lookup

	Genres []GenreTag
	Idols  []IdolCredit
	Links  []Link
}
