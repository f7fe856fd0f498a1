package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Name    string  `form:"name" validate:"notblank,max=10"`
	Country string  `form:"country" validate:"required,country"`
	Lat     float64 `form:"lat" validate:"latitude"`
	Lng     float64 `form:"lng" validate:"longitude"`
}

func assertValidationError(t *testing.T, err error, fields ...string) {
	t.Helper()
	var verr *RequestValidationError
	require.True(t, errors.As(err, &verr), "expected RequestValidationError, got %v", err)
	for _, f := range fields {
		assert.True(t, verr.Has(f), "expected field %s to fail: %v", f, verr)
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name   string
		form   sampleForm
		fields []string
	}{
		{"valid", sampleForm{Name: "Ana", Country: "France", Lat: 48.8, Lng: 2.3}, nil},
		{"blank name", sampleForm{Name: "   ", Country: "France"}, []string{"name"}},
		{"long name", sampleForm{Name: "abcdefghijk", Country: "France"}, []string{"name"}},
		{"unknown country", sampleForm{Name: "Ana", Country: "Atlantis"}, []string{"country"}},
		{"bad coordinates", sampleForm{Name: "Ana", Country: "Japan", Lat: 91, Lng: -181}, []string{"lat", "lng"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(&tt.form)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			assertValidationError(t, err, tt.fields...)
		})
	}
}

func TestRequestValidationError_Message(t *testing.T) {
	err := ValidateStruct(&sampleForm{Country: "Spain"})
	require.Error(t, err)
	assert.Equal(t, "name is required", err.Error())
}
