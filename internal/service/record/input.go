package record

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
)

// CandidateInput names a lookup entity inside a record payload. It carries no
// id: resolution happens by natural key.
type CandidateInput struct {
	Name   string
	Link   *string
	Manual *bool
}

func (i CandidateInput) candidate() domain.LookupCandidate {
	return domain.LookupCandidate{
		Name:   strings.TrimSpace(i.Name),
		Link:   i.Link,
		Manual: i.Manual,
	}
}

// LinkInput describes one download link in a create payload.
type LinkInput struct {
	Name string
	Size *decimal.Decimal
	Date *time.Time
	Link *string
	Star *bool
}

// CreateInput holds the parameters for creating a record with its children.
type CreateInput struct {
	ID            string
	Title         string
	Date          time.Time
	Duration      int32
	Director      *CandidateInput
	Studio        *CandidateInput
	Label         *CandidateInput
	Series        *CandidateInput
	Genres        []CandidateInput
	Idols         []CandidateInput
	Links         []LinkInput
	HasLinks      bool
	Permission    int32
	LocalImgCount int32
	Creator       string
	ModifiedBy    string
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.ID) == "" {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Duration < 0 {
		errs = append(errs, domain.FieldError{Field: "duration", Message: "must not be negative"})
	}

	for field, c := range map[string]*CandidateInput{
		"director": i.Director, "studio": i.Studio, "label": i.Label, "series": i.Series,
	} {
		if c != nil && strings.TrimSpace(c.Name) == "" {
			errs = append(errs, domain.FieldError{Field: field, Message: "name required"})
		}
	}
	for _, c := range i.Genres {
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, domain.FieldError{Field: "genres", Message: "name required"})
			break
		}
	}
	for _, c := range i.Idols {
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, domain.FieldError{Field: "idols", Message: "name required"})
			break
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// params converts the input into repository create parameters.
func (i CreateInput) params() domain.RecordCreateParams {
	p := domain.RecordCreateParams{
		ID:            strings.TrimSpace(i.ID),
		Title:         i.Title,
		Date:          i.Date,
		Duration:      i.Duration,
		HasLinks:      i.HasLinks,
		Permission:    i.Permission,
		LocalImgCount: i.LocalImgCount,
		Creator:       i.Creator,
		ModifiedBy:    i.ModifiedBy,
	}

	if i.Director != nil {
		c := i.Director.candidate()
		p.Director = &c
	}
	if i.Studio != nil {
		c := i.Studio.candidate()
		p.Studio = &c
	}
	if i.Label != nil {
		c := i.Label.candidate()
		p.Label = &c
	}
	if i.Series != nil {
		c := i.Series.candidate()
		p.Series = &c
	}

	for _, c := range i.Genres {
		p.Genres = append(p.Genres, c.candidate())
	}
	for _, c := range i.Idols {
		p.Idols = append(p.Idols, c.candidate())
	}
	for _, l := range i.Links {
		p.Links = append(p.Links, domain.RecordLinkParams{
			Name: l.Name,
			Size: l.Size,
			Date: l.Date,
			Link: l.Link,
			Star: l.Star,
		})
	}

	return p
}

// UpdateInput holds the parameters for overwriting a record's own fields.
// Foreign keys are plain ids: changing a record's director means pointing it
// at another existing lookup row, not renaming the current one.
type UpdateInput struct {
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
	ModifiedBy    string
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.ID) == "" {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Duration < 0 {
		errs = append(errs, domain.FieldError{Field: "duration", Message: "must not be negative"})
	}
	for field, id := range map[string]int64{
		"director_id": i.DirectorID, "studio_id": i.StudioID,
		"label_id": i.LabelID, "series_id": i.SeriesID,
	} {
		if id <= 0 {
			errs = append(errs, domain.FieldError{Field: field, Message: "required"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// params converts the input into repository update parameters.
func (i UpdateInput) params() domain.RecordUpdateParams {
	return domain.RecordUpdateParams{
		Title:         i.Title,
		Date:          i.Date,
		Duration:      i.Duration,
		DirectorID:    i.DirectorID,
		StudioID:      i.StudioID,
		LabelID:       i.LabelID,
		SeriesID:      i.SeriesID,
		HasLinks:      i.HasLinks,
		Permission:    i.Permission,
		LocalImgCount: i.LocalImgCount,
		ModifiedBy:    i.ModifiedBy,
	}
}
