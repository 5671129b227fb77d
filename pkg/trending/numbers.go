package trending

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError means a metric string could not be read as a number. Callers
// decide whether to treat the field as unknown or abort; the parser never
// substitutes zero.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("not a recognizable number: %q", e.Input)
}

// ParseStarCount normalizes a star-count string: thousands separators are
// stripped, trailing "k"/"m" multiply by 1e3/1e6, and surrounding label text
// ("123 stars today") is ignored. "1.2k" -> 1200, "3m" -> 3000000.
func ParseStarCount(s string) (int, error) {
	raw := s
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ",", "")

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == 'k' || r == 'm' {
			b.WriteRune(r)
		}
	}
	s = b.String()
	if s == "" {
		return 0, &ParseError{Input: raw}
	}

	mult := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		mult = 1_000
		s = strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		mult = 1_000_000
		s = strings.TrimSuffix(s, "m")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Input: raw}
	}

	return int(f * mult), nil
}
