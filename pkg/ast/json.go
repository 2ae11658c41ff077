package ast

import "encoding/json"

// MarshalJSON renders the variable letter as a one-character string rather
// than its byte value.
func (id *Identifier) MarshalJSON() ([]byte, error) {
	if id == nil {
		return []byte("null"), nil
	}
	payload := struct {
		Type NodeType `json:"type"`
		Name string   `json:"name"`
	}{
		Type: id.Type,
		Name: string(id.Name),
	}
	return json.Marshal(payload)
}
