// Package datastore provides error handling helpers for database operations
package datastore

import (
	"fmt"
	"strings"

	"github.com/wildsight/wildsight-go/internal/errors"
	"gorm.io/gorm"
)

// dbError creates a properly categorized database error with context
func dbError(err error, operation, priority string, context ...any) error {
	builder := errors.New(err).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Context("operation", operation)

	if priority != "" {
		builder = builder.Priority(priority)
	}

	// Add context pairs
	for i := 0; i < len(context)-1; i += 2 {
		if key, ok := context[i].(string); ok {
			builder = builder.Context(key, context[i+1])
		}
	}

	return builder.Build()
}

// validationError creates a validation error for a rejected field value
func validationError(message, field string, value any) error {
	return errors.Newf("%s", message).
		Component("datastore").
		Category(errors.CategoryValidation).
		Context("field", field).
		Context("value", fmt.Sprintf("%v", value)).
		Build()
}

// conflictError creates a conflict error for constraint violations
func conflictError(err error, operation, conflictType string) error {
	return errors.New(err).
		Component("datastore").
		Category(errors.CategoryConflict).
		Priority(errors.PriorityMedium).
		Context("operation", operation).
		Context("conflict_type", conflictType).
		Build()
}

// notFoundError creates a not found error (low priority, not shown to users)
func notFoundError(resource string, identifier any) error {
	return errors.Newf("%s %v not found", resource, identifier).
		Component("datastore").
		Category(errors.CategoryNotFound).
		Context("resource", resource).
		Context("identifier", fmt.Sprintf("%v", identifier)).
		Build()
}

// Sentinel errors for delete guards on referenced reference data.
var (
	errorReferencedSpecies  = errors.Newf("species is referenced by existing records").Build()
	errorReferencedLocation = errors.Newf("location is referenced by existing sightings").Build()
	errorReferencedRating   = errors.Newf("status rating is referenced by existing species ratings").Build()
)

// isConstraintViolation reports whether an error originates from a database
// uniqueness or integrity constraint.
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "constraint") ||
		strings.Contains(errStr, "duplicate")
}

// mapWriteError classifies a gorm write error as a conflict or database error.
func mapWriteError(err error, operation, conflictType string) error {
	if isConstraintViolation(err) {
		return conflictError(err, operation, conflictType)
	}
	return dbError(err, operation, "")
}

// mapLookupError classifies a gorm lookup error as not-found or database error.
func mapLookupError(err error, resource string, identifier any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundError(resource, identifier)
	}
	return dbError(err, "get_"+resource, "")
}
