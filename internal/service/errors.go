package service

import (
	"errors"
	"fmt"
	"strings"
)

// Common service errors
var (
	// ErrValidation is the kind shared by every input error
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is the kind shared by every missing-resource error
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is the kind shared by every uniqueness or reference conflict
	ErrConflict = errors.New("resource conflict")

	// ErrForbidden is returned when the caller lacks a required permission
	ErrForbidden = errors.New("forbidden")

	ErrNoFieldsToUpdate = kindError(ErrValidation, "No fields to update")

	ErrInvalidAmount  = kindError(ErrValidation, "Total amount must be a positive number")
	ErrInvalidCompany = kindError(ErrValidation, "Invalid company ID")
	ErrInvalidDate    = kindError(ErrValidation, "Invalid date. Expected YYYY-MM-DD")
	ErrInvalidID      = kindError(ErrValidation, "Invalid ID")

	ErrWorkOrderNotFound   = kindError(ErrNotFound, "Work order not found")
	ErrCompanyNotFound     = kindError(ErrNotFound, "Company not found")
	ErrVendorNotFound      = kindError(ErrNotFound, "Vendor not found")
	ErrActivityLogNotFound = kindError(ErrNotFound, "Activity log not found")

	ErrDuplicateWorkOrderNumber = kindError(ErrConflict, "Work order number already exists")
	ErrDuplicateCompanyGST      = kindError(ErrConflict, "Company with this GST number already exists")
	ErrDuplicateCompanyName     = kindError(ErrConflict, "Company with this name already exists")
	ErrDuplicateVendorName      = kindError(ErrConflict, "Vendor with this name already exists")
	ErrVendorInUse              = kindError(ErrConflict, "Cannot delete vendor. This vendor is referenced in existing work orders.")

	ErrAdminPermissionRequired = kindError(ErrForbidden, "Admin permission required to delete work orders")

	// ErrPdfGenerationFailed is returned when the document engine fails or times out
	ErrPdfGenerationFailed = errors.New("Failed to generate PDF")
)

// Error is a sentinel carrying a user-facing message and the kind it belongs
// to, so errors.Is matches both the sentinel and its kind.
type Error struct {
	kind    error
	message string
}

func kindError(kind error, message string) *Error {
	return &Error{kind: kind, message: message}
}

func (e *Error) Error() string { return e.message }

// Unwrap exposes the kind
func (e *Error) Unwrap() error { return e.kind }

// MissingFieldsError lists required fields absent from a request
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Unwrap() error { return ErrValidation }

// InvalidEnumError reports a value outside a closed set
type InvalidEnumError struct {
	Field   string
	Allowed []string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("Invalid %s. Must be one of: %s", e.Field, strings.Join(e.Allowed, ", "))
}

func (e *InvalidEnumError) Unwrap() error { return ErrValidation }

// FieldError is a validation failure on a single field
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

func (e *FieldError) Unwrap() error { return ErrValidation }

// requireFields returns a MissingFieldsError naming every blank field, in the
// order given, or nil.
func requireFields(fields ...fieldValue) error {
	var missing []string
	for _, f := range fields {
		if !f.present {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

type fieldValue struct {
	name    string
	present bool
}

func field(name, value string) fieldValue {
	return fieldValue{name: name, present: strings.TrimSpace(value) != ""}
}
