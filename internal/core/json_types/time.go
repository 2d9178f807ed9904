package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Time is a clock time on the wire, formatted as "15:04:05". Input without
// seconds is accepted.
type Time struct {
	Time time.Time
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	// Strip the surrounding quotes
	str := string(data[1 : len(data)-1])

	parsed, err := time.Parse("15:04:05", str)
	if err != nil {
		parsed, err = time.Parse("15:04", str)
		if err != nil {
			return fmt.Errorf("failed to parse time: %v", err)
		}
	}

	*t = Time{Time: parsed}
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format("15:04:05"))
}

func (t Time) IsZero() bool {
	return t.Time.IsZero()
}
