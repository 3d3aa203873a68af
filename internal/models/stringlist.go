package models

import (
	"database/sql/driver"
	"encoding/json"
)

// StringList stores an ordered list of strings as a JSON array in a
// text column. Malformed or missing content decodes to an empty list
// rather than failing the row read.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	*l = StringList{}
	if value == nil {
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	*l = out
	return nil
}
