package utils

import (
	"strconv"
	"strings"
)

const maxIDDigits = 19

// ParseID validates an entity identifier as it appears on the wire (path, query or body)
// and returns its numeric form. Only the decimal rendering of a positive int64 is accepted.
func ParseID(s string) (int64, bool) {
	if s == "" || len(s) > maxIDDigits {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// FormatID renders an id the way ParseID accepts it.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Transfer converts a jwt claim value into a user id.
// Numbers decoded from json arrive as float64, ids we issue arrive as strings.
func Transfer(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, v > 0
	case int:
		return int64(v), v > 0
	case float64:
		return int64(v), v > 0
	case string:
		return ParseID(strings.TrimSpace(v))
	default:
		return 0, false
	}
}
