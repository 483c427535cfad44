// Package isotime provides a time type that writes RFC 3339 and reads both
// RFC 3339 and zone-less ISO-8601 timestamps.
package isotime

import (
	"encoding/json"
	"fmt"
	"time"
)

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// Time wraps time.Time with lenient ISO-8601 decoding.
type Time struct {
	time.Time
}

// Now returns the current time.
func Now() Time {
	return Time{time.Now()}
}

// Parse reads s using the accepted layouts. Zone-less values are local time.
func Parse(s string) (Time, error) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Time{t}, nil
		}
	}
	return Time{}, fmt.Errorf("invalid ISO-8601 timestamp: %q", s)
}

// MarshalJSON writes the time as an RFC 3339 string.
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// UnmarshalJSON accepts RFC 3339 and zone-less ISO-8601 strings.
func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
