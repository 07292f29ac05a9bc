package core

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"snip/pkg/domain"
)

type (
	Snippet         = domain.Snippet
	StorageDriver   = domain.StorageDriver
	PersistentStore = domain.PersistentStore
	ErrNotFound     = domain.ErrNotFound
)

const (
	StorageFile   = domain.StorageFile
	StorageMemory = domain.StorageMemory
	StorageSQLite = domain.StorageSQLite
)

// TagFilter returns a List filter matching tags that contain tag.
func TagFilter(tag string) *string { return &tag }

// AddRequest carries the caller-supplied fields of a new snippet.
// Code and language must be non-empty; tags may be nil.
type AddRequest struct {
	Code     string   `validate:"required"`
	Language string   `validate:"required"`
	Tags     []string `validate:"omitempty"`
}

var validate = validator.New()

// Validate reports missing required fields as ErrInvalidSnippet.
func (r AddRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidSnippet, formatValidationError(err))
	}
	return nil
}

func formatValidationError(err error) string {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

func errInvalidID(id int) error {
	return fmt.Errorf("snippet id %d is not positive", id)
}

func errDuplicateID(id int) error {
	return fmt.Errorf("snippet id %d appears more than once", id)
}
