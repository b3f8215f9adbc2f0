package shared

import "strconv"

// OptionalFloat represents a derived value that may be undefined when there
// is not enough history to compute it. The zero value is undefined.
type OptionalFloat struct {
	Value float64
	Valid bool
}

// NewOptionalFloat initializes a defined optional float with the provided value.
func NewOptionalFloat(value float64) OptionalFloat {
	return OptionalFloat{
		Value: value,
		Valid: true,
	}
}

// String stringifies the provided optional float. Undefined values stringify
// to an empty string.
func (o OptionalFloat) String() string {
	if !o.Valid {
		return ""
	}

	return strconv.FormatFloat(o.Value, 'f', -1, 64)
}
