package lookup

import (
	"strings"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
)

const maxNameLength = 255

// CreateInput holds the parameters for creating a lookup entity.
// Link and Manual are optional; absent values take the natural-key defaults.
type CreateInput struct {
	Name   string
	Link   *string
	Manual *bool
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 255 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// candidate converts the input into a dedupe candidate.
func (i CreateInput) candidate() domain.LookupCandidate {
	return domain.LookupCandidate{
		Name:   strings.TrimSpace(i.Name),
		Link:   i.Link,
		Manual: i.Manual,
	}
}

// UpdateInput holds the parameters for a partial lookup update.
// Nil fields are left unchanged.
type UpdateInput struct {
	ID     int64
	Name   *string
	Link   *string
	Manual *bool
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.ID <= 0 {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Name == nil && i.Link == nil && i.Manual == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Name != nil {
		name := strings.TrimSpace(*i.Name)
		if name == "" {
			errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
		}
		if len(name) > maxNameLength {
			errs = append(errs, domain.FieldError{Field: "name", Message: "max 255 characters"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// patch converts the input into a repository patch with the name trimmed.
func (i UpdateInput) patch() domain.LookupPatch {
	p := domain.LookupPatch{Link: i.Link, Manual: i.Manual}
	if i.Name != nil {
		trimmed := strings.TrimSpace(*i.Name)
		p.Name = &trimmed
	}
	return p
}
