package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/layerpause/internal/pause"
	"github.com/roach88/layerpause/internal/schema"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		expected string
	}{
		{"nil", nil, ErrCodeGeneric, ""},
		{"schema error", &schema.Error{Field: "pause_layer", Message: "out of bound"}, ErrCodeGeneric, ErrCodeInvalidSettings},
		{"wrapped settings error", fmt.Errorf("resolve: %w", &pause.SettingsError{Key: "pause_layer", Message: "must be >= 1"}), ErrCodeGeneric, ErrCodeInvalidSettings},
		{"missing file", fmt.Errorf("open: %w", fs.ErrNotExist), ErrCodeReadFailed, ErrCodeNotFound},
		{"other", errors.New("boom"), ErrCodeWriteFailed, ErrCodeWriteFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorCode(tt.err, tt.fallback))
		})
	}
}

func TestErrorCodesAreDistinct(t *testing.T) {
	codes := []string{
		ErrCodeGeneric,
		ErrCodeReadFailed,
		ErrCodeNotFound,
		ErrCodeInvalidSettings,
		ErrCodeWriteFailed,
		ErrCodeJournal,
		ErrCodeInvalidFlag,
		ErrCodeTestFailed,
	}

	seen := make(map[string]bool, len(codes))
	for _, c := range codes {
		assert.False(t, seen[c], "duplicate code %s", c)
		seen[c] = true
	}
}
