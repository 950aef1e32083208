package mood

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/moodmate/companion/internal/model/mood"
)

// ValidationError reports a field that could not be cast to its stored type.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("MoodEntry validation failed: %s: %s", e.Field, e.Reason)
}

// ParseInput reads mood, journal and timestamp from a decoded JSON object.
// Scalar values are cast to strings, unknown keys are dropped.
func ParseInput(body map[string]any) (mood.Input, error) {
	var in mood.Input

	m, err := castString("mood", body["mood"])
	if err != nil {
		return mood.Input{}, err
	}
	in.Mood = m

	j, err := castString("journal", body["journal"])
	if err != nil {
		return mood.Input{}, err
	}
	in.Journal = j

	ts, err := castTime("timestamp", body["timestamp"])
	if err != nil {
		return mood.Input{}, err
	}
	in.Timestamp = ts

	return in, nil
}

func castString(field string, v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(val), nil
	default:
		return "", &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("Cast to string failed for value of type %s at path %q", jsonKind(v), field),
		}
	}
}

func castTime(field string, v any) (time.Time, error) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, nil
	case float64:
		return checkYear(field, time.UnixMilli(int64(val)).UTC())
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, nil
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t.UTC(), nil
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return checkYear(field, time.UnixMilli(ms).UTC())
		}
		return time.Time{}, &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("Cast to date failed for value %q at path %q", val, field),
		}
	default:
		return time.Time{}, &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("Cast to date failed for value of type %s at path %q", jsonKind(v), field),
		}
	}
}

// checkYear rejects times that cannot be written back as RFC 3339 JSON.
func checkYear(field string, t time.Time) (time.Time, error) {
	if y := t.Year(); y < 0 || y > 9999 {
		return time.Time{}, &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("Cast to date failed: year %d out of range at path %q", y, field),
		}
	}
	return t, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case map[string]any:
		return "Object"
	case []any:
		return "Array"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
