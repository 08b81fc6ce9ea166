package conv

import (
	"encoding/json"
	"math"
)

// AsInt attempts to coerce value into an int. The ok result reports whether
// the coercion was lossless; fractional floats and non numeric values are
// rejected.
func AsInt(value interface{}) (int, bool) {
	switch actual := value.(type) {
	case int:
		return actual, true
	case int32:
		return int(actual), true
	case int64:
		return int(actual), true
	case uint:
		return int(actual), true
	case uint32:
		return int(actual), true
	case uint64:
		return int(actual), true
	case float32:
		return asIntegral(float64(actual))
	case float64:
		return asIntegral(actual)
	case json.Number:
		if i, err := actual.Int64(); err == nil {
			return int(i), true
		}
	}
	return 0, false
}

func asIntegral(value float64) (int, bool) {
	if value != math.Trunc(value) {
		return 0, false
	}
	return int(value), true
}
