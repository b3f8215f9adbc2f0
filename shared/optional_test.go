package shared

import (
	"testing"

	"github.com/peterldowns/testy/assert"
)

func TestOptionalFloat(t *testing.T) {
	// Ensure the zero value is undefined.
	var undefined OptionalFloat
	assert.Equal(t, undefined.Valid, false)
	assert.Equal(t, undefined.String(), "")

	// Ensure a defined optional float carries its value.
	defined := NewOptionalFloat(float64(42.5))
	assert.Equal(t, defined.Valid, true)
	assert.Equal(t, defined.Value, float64(42.5))
	assert.Equal(t, defined.String(), "42.5")

	// Ensure a defined zero is distinct from an undefined value.
	zero := NewOptionalFloat(float64(0))
	assert.Equal(t, zero.Valid, true)
	assert.Equal(t, zero.String(), "0")
}
