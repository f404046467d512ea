package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// StringList is a string slice stored as a JSON column.
type StringList []string

// Value implements driver.Valuer. Empty lists are stored as [] so round
// trips never produce NULL.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("scan StringList: unexpected type %T", value)
	}
	return json.Unmarshal(bytes, l)
}

// Normalize trims entries and drops empties, preserving order.
func (l StringList) Normalize() StringList {
	out := make(StringList, 0, len(l))
	for _, item := range l {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// StringMap is an open string-to-string map stored as a JSON column. Used
// for custom field values; keys must exist in the custom field registry.
type StringMap map[string]string

// Value implements driver.Valuer.
func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *StringMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("scan StringMap: unexpected type %T", value)
	}
	return json.Unmarshal(bytes, m)
}

// Keys returns the map's keys sorted for stable output.
func (m StringMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Normalize trims keys and values and drops pairs where either is empty.
func (m StringMap) Normalize() StringMap {
	out := make(StringMap, len(m))
	for key, value := range m {
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key != "" && value != "" {
			out[key] = value
		}
	}
	return out
}

// StageList is a Stage slice stored as a JSON column.
type StageList []Stage

// Value implements driver.Valuer.
func (l StageList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StageList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("scan StageList: unexpected type %T", value)
	}
	return json.Unmarshal(bytes, l)
}

// ValidationErrors maps field names to human-readable problems. It is
// returned whole so API clients can render per-field messages.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a problem for a field, keeping the first message per field.
func (v ValidationErrors) Add(field, msg string) {
	if _, exists := v[field]; !exists {
		v[field] = msg
	}
}
