// Package commands provides CLI command implementations for the content gate.
package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter(t *testing.T) {
	tests := []struct {
		name   string
		format string
	}{
		{
			name:   "JSON output",
			format: OutputFormatJSON,
		},
		{
			name:   "YAML output",
			format: OutputFormatYAML,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := NewOutputFormatter(tt.format)
			require.NotNil(t, formatter)
			assert.Equal(t, tt.format, formatter.format)
		})
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{
			name:    "valid JSON format",
			format:  OutputFormatJSON,
			wantErr: false,
		},
		{
			name:    "valid YAML format",
			format:  OutputFormatYAML,
			wantErr: false,
		},
		{
			name:    "invalid format",
			format:  "xml",
			wantErr: true,
		},
		{
			name:    "empty format",
			format:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
