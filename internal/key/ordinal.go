package key

import (
	"math"
	"strconv"

	"github.com/gobuffalo/flect"
)

// Ordinal renders a 1-based rank as "1st", "2nd", "3rd", "4th", "11th", "21st".
func Ordinal(n int) string {
	return flect.Ordinalize(strconv.Itoa(n))
}

// Build is the inverse of Parse: Build("Thing", 1) == "2nd Thing".
// The largest int is rejected because its ordinal does not fit in an int.
func Build(baseKey string, index int) (string, error) {
	switch {
	case index < 0:
		return "", ErrNegativeIndex
	case index == math.MaxInt:
		return "", ErrIndexOutOfRange
	}
	return Ordinal(index+1) + " " + baseKey, nil
}

// Index returns a pointer to i, for passing an explicit index to Parse.
func Index(i int) *int {
	return &i
}
