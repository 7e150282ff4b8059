package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// UUIDList is stored as a jsonb array of ids.
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]uuid.UUID(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *UUIDList) Scan(value interface{}) error {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		*l = UUIDList{}
		return nil
	default:
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, (*[]uuid.UUID)(l))
}

// ListSeparator joins appointment service names in storage.
const ListSeparator = ", "

// DelimitedList is a list of names persisted as a single ", "-joined string
// and exposed as a JSON array.
type DelimitedList []string

func (l DelimitedList) Value() (driver.Value, error) {
	return strings.Join(l, ListSeparator), nil
}

func (l *DelimitedList) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	case nil:
		*l = DelimitedList{}
		return nil
	default:
		return errors.New("type assertion to string failed")
	}
	*l = SplitDelimited(s)
	return nil
}

// UnmarshalJSON accepts both an array and the legacy delimited string form.
func (l *DelimitedList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = cleanNames(arr)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("services must be a list of names or a comma separated string")
	}
	*l = SplitDelimited(s)
	return nil
}

func SplitDelimited(s string) DelimitedList {
	return cleanNames(strings.Split(s, ","))
}

func cleanNames(in []string) DelimitedList {
	out := DelimitedList{}
	for _, name := range in {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
