package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar day on the wire, formatted as "2006-01-02".
type Date struct {
	Date time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	// Strip the surrounding quotes
	str := string(data[1 : len(data)-1])

	parsed, err := time.Parse("2006-01-02", str)
	if err != nil {
		return fmt.Errorf("failed to parse date: %v", err)
	}

	*d = Date{Date: parsed}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Date.Format("2006-01-02"))
}

func (d Date) IsZero() bool {
	return d.Date.IsZero()
}
