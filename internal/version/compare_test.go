package version

import (
	"testing"

	"github.com/rxtech-lab/argo-kernel/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStrategyCompatibility(t *testing.T) {
	tests := []struct {
		name          string
		engine        string
		constraint    string
		expectError   bool
		expectCode    errors.ErrorCode
		errorContains string
	}{
		{name: "empty constraint", engine: "1.0.0", constraint: ""},
		{name: "exact match", engine: "1.0.0", constraint: "1.0.0"},
		{name: "v prefix", engine: "v1.2.3", constraint: "1.2.x"},
		{name: "range", engine: "1.4.0", constraint: ">= 1.0, < 2.0"},
		{name: "tilde", engine: "1.2.9", constraint: "~1.2"},
		{name: "development build", engine: "main", constraint: ">= 9.0"},
		{
			name:          "major too high",
			engine:        "2.0.0",
			constraint:    "1.x",
			expectError:   true,
			expectCode:    errors.ErrCodeVersionMismatch,
			errorContains: "does not satisfy",
		},
		{
			name:          "minor too low",
			engine:        "1.1.0",
			constraint:    ">= 1.2",
			expectError:   true,
			expectCode:    errors.ErrCodeVersionMismatch,
			errorContains: "does not satisfy",
		},
		{
			name:          "invalid engine version",
			engine:        "not-a-version",
			constraint:    "1.x",
			expectError:   true,
			expectCode:    errors.ErrCodeInvalidVersion,
			errorContains: "invalid engine version",
		},
		{
			name:          "invalid constraint",
			engine:        "1.0.0",
			constraint:    "!!",
			expectError:   true,
			expectCode:    errors.ErrCodeInvalidVersion,
			errorContains: "invalid engine_version constraint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckStrategyCompatibility(tt.engine, tt.constraint)

			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, tt.expectCode, errors.GetCode(err))
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGetVersion(t *testing.T) {
	v := GetVersion()
	assert.Equal(t, Version, v)
}
