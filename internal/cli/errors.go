package cli

import (
	"errors"
	"io/fs"

	"github.com/roach88/layerpause/internal/pause"
	"github.com/roach88/layerpause/internal/schema"
)

// Error code constants, unified across all CLI commands.
const (
	ErrCodeGeneric         = "E001" // Generic/unknown error
	ErrCodeReadFailed      = "E004" // Input could not be read or decoded
	ErrCodeNotFound        = "E005" // Path not found
	ErrCodeInvalidSettings = "E006" // Settings rejected by the schema or bounds check
	ErrCodeWriteFailed     = "E007" // Output write error
	ErrCodeJournal         = "E008" // Journal open/read/write error
	ErrCodeInvalidFlag     = "E009" // Flag value out of its domain

	ErrCodeTestFailed = "E_TEST_FAILED"
)

// ErrorCode classifies err into one of the codes above, returning fallback
// when no more specific code applies.
func ErrorCode(err error, fallback string) string {
	var schemaErr *schema.Error
	var settingsErr *pause.SettingsError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &schemaErr), errors.As(err, &settingsErr):
		return ErrCodeInvalidSettings
	case errors.Is(err, fs.ErrNotExist):
		return ErrCodeNotFound
	default:
		return fallback
	}
}
