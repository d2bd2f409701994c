package jobs

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/stephanygrace/customer-portal/internal/models"
)

// SentinelDate is the value the upstream stores in unset date columns.
const SentinelDate = "0000-00-00 00:00:00"

// Extractor yields a candidate value for a canonical field, or false when the
// raw record has nothing usable for it.
type Extractor func(raw models.RawRecord) (string, bool)

// FirstOf applies extractors in order and returns the first hit.
func FirstOf(raw models.RawRecord, extractors ...Extractor) (string, bool) {
	for _, extract := range extractors {
		if v, ok := extract(raw); ok {
			return v, true
		}
	}
	return "", false
}

// FirstOr is FirstOf with a default for when every extractor misses.
func FirstOr(raw models.RawRecord, def string, extractors ...Extractor) string {
	if v, ok := FirstOf(raw, extractors...); ok {
		return v
	}
	return def
}

// Field reads a non-empty scalar field. Numbers are rendered in their
// original textual form; zero, false and nested values count as absent.
func Field(name string) Extractor {
	return func(raw models.RawRecord) (string, bool) {
		return scalar(raw[name])
	}
}

// DateField reads a date field, treating the sentinel zero date as absent.
func DateField(name string) Extractor {
	return func(raw models.RawRecord) (string, bool) {
		v, ok := scalar(raw[name])
		if !ok || IsSentinelOrAbsent(v) {
			return "", false
		}
		return v, true
	}
}

// FirstLine reads a text field and keeps only its first line.
func FirstLine(name string) Extractor {
	return func(raw models.RawRecord) (string, bool) {
		v, ok := scalar(raw[name])
		if !ok {
			return "", false
		}
		line, _, _ := strings.Cut(v, "\n")
		line = strings.TrimRight(line, "\r")
		if line == "" {
			return "", false
		}
		return line, true
	}
}

// Nested reads field from the object stored under parent.
func Nested(parent, field string) Extractor {
	return func(raw models.RawRecord) (string, bool) {
		obj, ok := raw[parent].(map[string]interface{})
		if !ok {
			return "", false
		}
		return scalar(obj[field])
	}
}

// Prefix yields the first n characters of field, optionally upper-cased.
func Prefix(name string, n int, upper bool) Extractor {
	return func(raw models.RawRecord) (string, bool) {
		v, ok := scalar(raw[name])
		if !ok {
			return "", false
		}
		if r := []rune(v); len(r) > n {
			v = string(r[:n])
		}
		if upper {
			v = strings.ToUpper(v)
		}
		return v, true
	}
}

// Literal always yields s.
func Literal(s string) Extractor {
	return func(models.RawRecord) (string, bool) {
		return s, true
	}
}

// IsSentinelOrAbsent reports whether a date value means "not set".
func IsSentinelOrAbsent(v interface{}) bool {
	switch d := v.(type) {
	case nil:
		return true
	case string:
		d = strings.TrimSpace(d)
		return d == "" || d == SentinelDate
	case *string:
		return d == nil || IsSentinelOrAbsent(*d)
	}
	return false
}

// OptionalDate returns the sentinel-filtered date in field, or nil.
func OptionalDate(raw models.RawRecord, field string) *string {
	v, ok := DateField(field)(raw)
	if !ok {
		return nil
	}
	return &v
}

// Number parses a numeric field that may arrive as a JSON number or a string.
// NaN and infinities count as unparseable.
func Number(raw models.RawRecord, field string) (float64, bool) {
	var f float64
	switch v := raw[field].(type) {
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case float64:
		f = v
	case int:
		f = float64(v)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func scalar(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, s != ""
	case json.Number:
		if f, err := s.Float64(); err == nil && f == 0 {
			return "", false
		}
		return s.String(), true
	case float64:
		if s == 0 {
			return "", false
		}
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		if s == 0 {
			return "", false
		}
		return strconv.Itoa(s), true
	case bool:
		if !s {
			return "", false
		}
		return "true", true
	}
	return "", false
}
