// Package validation provides request validation utilities using the validator/v10 library.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/readingtracker/readingtracker-server/internal/domain"
	domainerrors "github.com/readingtracker/readingtracker-server/internal/errors"
	"github.com/readingtracker/readingtracker-server/internal/store"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for our domain.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "query", "path"} {
			name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	//nolint:errcheck // tags are static and valid
	_ = v.RegisterValidation("itemstatus", func(fl validator.FieldLevel) bool {
		return domain.Status(fl.Field().String()).Valid()
	})
	//nolint:errcheck // tags are static and valid
	_ = v.RegisterValidation("itemsort", func(fl validator.FieldLevel) bool {
		return store.ItemSort(fl.Field().String()).Valid()
	})

	return &Validator{v: v}
}

// Validate validates a struct and returns a VALIDATION_ERROR domain error.
// The message lists every failing field as "field: problem", in field order;
// Details maps each field to its problem.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// Var validates a single value against a tag string, reporting it under field.
func (v *Validator) Var(field string, value any, tag string) error {
	err := v.v.Var(value, tag)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}
	msg := v.friendlyMessage(validationErrs[0])
	return domainerrors.ValidationWithDetails(field+": "+msg, map[string]string{field: msg})
}

// formatError converts validator errors to domain errors.
func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	parts := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := fieldPath(e)
		msg := v.friendlyMessage(e)
		fieldErrors[field] = msg
		parts = append(parts, field+": "+msg)
	}

	return domainerrors.ValidationWithDetails(strings.Join(parts, ", "), fieldErrors)
}

// fieldPath drops the top-level struct name from the namespace, so nested
// fields read as "tagIds[1]".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return e.Field()
}

//nolint:gocyclo // Switch statement covering validation tags is intentionally exhaustive.
func (v *Validator) friendlyMessage(e validator.FieldError) string {
	isString := e.Kind() == reflect.String
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s entries", e.Param())
		}
		return "must be at least " + e.Param()
	case "max":
		if isString {
			return fmt.Sprintf("must not exceed %s characters", e.Param())
		}
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("must not contain more than %s entries", e.Param())
		}
		return "must not exceed " + e.Param()
	case "url", "http_url":
		return "must be a valid URL"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + e.Param()
	case "itemstatus":
		return "must be one of: UNREAD READ"
	case "itemsort":
		return "must be one of: savedAt statusFirst"
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "lt":
		return "must be less than " + e.Param()
	default:
		return "is invalid"
	}
}
