package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Int64Slice is a thin wrapper around []int64 that implements sql.Scanner and
// driver.Valuer so ID-list columns stored as jsonb work transparently.
type Int64Slice []int64

// Scan implements sql.Scanner
func (s *Int64Slice) Scan(src interface{}) error {
	if s == nil {
		return fmt.Errorf("dbtypes: Scan on nil *Int64Slice")
	}
	if src == nil {
		*s = []int64{}
		return nil
	}

	switch v := src.(type) {
	case []byte:
		var out []int64
		if err := json.Unmarshal(v, &out); err != nil {
			return err
		}
		*s = out
		return nil
	case string:
		var out []int64
		if err := json.Unmarshal([]byte(v), &out); err != nil {
			return err
		}
		*s = out
		return nil
	default:
		return fmt.Errorf("dbtypes: cannot scan type %T into Int64Slice", src)
	}
}

// Value implements driver.Valuer
// Marshals the slice to JSON; nil marshals to an empty array, never NULL.
func (s Int64Slice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]int64(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
