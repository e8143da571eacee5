package validate_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/networth/internal/validate"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "Number", raw: `12.5`, want: "12.5"},
		{name: "String", raw: `"99.99"`, want: "99.99"},
		{name: "PaddedString", raw: `" 3 "`, want: "3"},
		{name: "Missing", raw: ``, want: "0"},
		{name: "Null", raw: `null`, want: "0"},
		{name: "EmptyString", raw: `""`, want: "0"},
		{name: "Negative", raw: `-4`, want: "-4"},
		{name: "Word", raw: `"ten"`, wantErr: true},
		{name: "Bool", raw: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validate.Amount("amount", json.RawMessage(tt.raw))
			if tt.wantErr {
				var vErr *validate.Error
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "amount must be a number", vErr.Message)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDate(t *testing.T) {
	got, err := validate.Date("date", "2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got.Format(time.DateOnly))

	got, err = validate.Date("date", "2024-03-01T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())

	got, err = validate.Date("date", "")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = validate.Date("date", "29/02/2024")
	assert.ErrorIs(t, err, validate.ErrInvalid)
}
