package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// AssetList is an ordered list of stored-file paths backed by a nullable
// JSON column. An empty list is persisted as SQL NULL and scans back as
// nil, so "never had assets" and "all removed" are the same state.
type AssetList []string

// Value implements driver.Valuer.
func (a AssetList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return nil, nil
	}
	return json.Marshal([]string(a))
}

// Scan implements sql.Scanner.
func (a *AssetList) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("failed to unmarshal asset list value:", value))
	}

	var paths []string
	if err := json.Unmarshal(bytes, &paths); err != nil {
		return err
	}
	if len(paths) == 0 {
		*a = nil
		return nil
	}
	*a = AssetList(paths)
	return nil
}
