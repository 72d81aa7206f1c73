package config

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidator_DisplayRules(t *testing.T) {
	tests := []struct {
		name    string
		display DisplayConfig
		wantErr []string
	}{
		{
			name:    "valid values",
			display: DisplayConfig{Theme: "system", Font: "mono"},
		},
		{
			name:    "unknown theme",
			display: DisplayConfig{Theme: "sepia", Font: "sans"},
			wantErr: []string{"display.theme must be one of [light dark system]"},
		},
		{
			name:    "unknown font and empty theme",
			display: DisplayConfig{Theme: "", Font: "cursive"},
			wantErr: []string{
				"display.theme must be one of [light dark system]",
				"display.font must be one of [serif sans mono]",
			},
		},
	}

	validate, trans, err := newValidator()
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Display = tt.display

			err := validate.Struct(cfg)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}

			var validationErrors validator.ValidationErrors
			require.ErrorAs(t, err, &validationErrors)
			var got []string
			for _, e := range validationErrors {
				got = append(got, e.Translate(trans))
			}
			assert.ElementsMatch(t, tt.wantErr, got)
		})
	}
}
