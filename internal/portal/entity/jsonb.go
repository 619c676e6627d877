package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonbValue marshals a JSONB-backed field for storage.
func jsonbValue(v interface{}) (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// jsonbScan unmarshals a JSONB column into dst.
func jsonbScan(dst interface{}, value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan JSONB: %v", value)
	}
	return json.Unmarshal(bytes, dst)
}
