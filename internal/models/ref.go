package models

import (
	"bytes"
	"encoding/json"
)

// Ref is a reference to another record. The API sends either the bare id or
// the populated object, depending on the endpoint.
type Ref struct {
	ID       string `json:"_id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	ItemName string `json:"itemName,omitempty"`
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	type plain Ref
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Ref(p)
	return nil
}
