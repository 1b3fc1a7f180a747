package domain

// LookupFilter narrows lookup listings. Name and Link are case-sensitive
// substring matches; empty or whitespace-only values are treated as absent.
type LookupFilter struct {
	ID   *int64
	Name *string
	Link *string
}

// RecordFilter narrows record listings. ID and Title are substring matches,
// the foreign keys are exact.
type RecordFilter struct {
	ID         *string
	Title      *string
	DirectorID *int64
	StudioID   *int64
	LabelID    *int64
	SeriesID   *int64
}
