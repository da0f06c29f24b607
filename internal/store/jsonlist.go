package store

import (
	"encoding/json"
	"fmt"
)

// jsonList marshals a string slice for a JSONB column. Nil slices are
// stored as empty arrays so scans never produce null.
func jsonList(items []string) ([]byte, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal json list: %w", err)
	}
	return b, nil
}

// scanList unmarshals a JSONB column into a string slice.
func scanList(raw []byte, dest *[]string) error {
	if len(raw) == 0 {
		*dest = []string{}
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal json list: %w", err)
	}
	return nil
}
