package interval

import (
	"encoding/json"

	"github.com/pkg/errors"
)

func (ti TimeInterval) MarshalText() ([]byte, error) {
	return []byte(ti.ISOString()), nil
}

// UnmarshalText reads the "<start>/<end>" form with the default factory.
func (ti *TimeInterval) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*ti = parsed
	return nil
}

// MarshalJSON encodes the interval as its ISO string.
func (ti TimeInterval) MarshalJSON() ([]byte, error) {
	return json.Marshal(ti.ISOString())
}

func (ti *TimeInterval) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "time interval must be a JSON string")
	}
	return ti.UnmarshalText([]byte(s))
}
