package validation

import (
	"fmt"
	"strconv"
)

// ParseID parses a positive int64 identifier taken from a path segment.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid identifier %q: %w", raw, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid identifier %q: must be positive", raw)
	}
	return id, nil
}
