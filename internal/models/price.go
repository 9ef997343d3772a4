package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// MaxUnitPrice is the largest price the unit_price INT column holds.
const MaxUnitPrice = math.MaxInt32

// ParseUnitPrice accepts a JSON number holding a positive integer no larger
// than MaxUnitPrice. Integral floats such as 12.0 or 1e3 are accepted,
// strings, fractions, zero and negatives are not.
func ParseUnitPrice(raw json.RawMessage) (int64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' {
		return 0, false
	}

	if n, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
		return n, n > 0 && n <= MaxUnitPrice
	}

	// the range check comes before the conversion so int64(f) cannot overflow
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || f != math.Trunc(f) || f <= 0 || f > MaxUnitPrice {
		return 0, false
	}
	return int64(f), true
}
