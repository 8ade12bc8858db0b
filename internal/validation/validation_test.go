package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableNumber(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{name: "lower bound", value: 1, wantErr: false},
		{name: "upper bound", value: 100, wantErr: false},
		{name: "middle", value: 42, wantErr: false},
		{name: "zero", value: 0, wantErr: true},
		{name: "negative", value: -3, wantErr: true},
		{name: "above upper bound", value: 101, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TableNumber(tt.value)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			var vErr ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, "table_number", vErr.Field)
			assert.NotEmpty(t, vErr.Message)
		})
	}
}

func TestMenuID(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{name: "lower bound", value: 1, wantErr: false},
		{name: "upper bound", value: 10, wantErr: false},
		{name: "zero", value: 0, wantErr: true},
		{name: "above upper bound", value: 11, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MenuID(tt.value)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			var vErr ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, "menu_id", vErr.Field)
		})
	}
}

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, 0, NormalizePage(nil), "absent page defaults to 0")

	negative := -2
	assert.Equal(t, 0, NormalizePage(&negative))

	third := 3
	assert.Equal(t, 3, NormalizePage(&third))
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, 5, NormalizeLimit(nil), "absent limit defaults to 5")

	zero := 0
	assert.Equal(t, 1, NormalizeLimit(&zero), "limit 0 is coerced to 1")

	negative := -7
	assert.Equal(t, 1, NormalizeLimit(&negative))

	twenty := 20
	assert.Equal(t, 20, NormalizeLimit(&twenty))
}
