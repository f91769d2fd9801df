package horizon

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Reserved JSON field names for a Record. Anything else lands in Fields.
const (
	fieldID       = "id"
	fieldParentID = "parent_id"
	fieldTitle    = "title"
	fieldLabel    = "label"
)

// Record is one node of the forest. A nil ParentID is the root sentinel.
type Record[K comparable] struct {
	ID       K
	ParentID *K
	Title    string

	// Fields holds caller-defined payload. It is encoded flat, next to the
	// reserved id, parent_id and title keys.
	Fields map[string]any
}

// NewRecord returns a record with the given parent. Pass nil for a root.
func NewRecord[K comparable](id K, parent *K, title string) Record[K] {
	return Record[K]{ID: id, ParentID: parent, Title: title}
}

// Parent is a convenience for building a ParentID from a value.
func Parent[K comparable](id K) *K {
	return &id
}

// IsRoot reports whether the record sits under the root sentinel.
func (r Record[K]) IsRoot() bool {
	return r.ParentID == nil
}

// clone returns a deep copy of r. Nested maps and slices in Fields are
// copied; other field values are treated as immutable.
func (r Record[K]) clone() Record[K] {
	out := Record[K]{ID: r.ID, Title: r.Title}
	if r.ParentID != nil {
		p := *r.ParentID
		out.ParentID = &p
	}
	if r.Fields != nil {
		out.Fields = cloneFields(r.Fields)
	}
	return out
}

func cloneFields(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies the container shapes produced by JSON and YAML decoding.
func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneFields(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// flatten builds the JSON object representation of r.
func (r Record[K]) flatten() map[string]any {
	obj := make(map[string]any, len(r.Fields)+3)
	for k, v := range r.Fields {
		obj[k] = v
	}
	obj[fieldID] = r.ID
	if r.ParentID != nil {
		obj[fieldParentID] = *r.ParentID
	} else {
		obj[fieldParentID] = nil
	}
	obj[fieldTitle] = r.Title
	return obj
}

// MarshalJSON encodes the record as a flat object.
func (r Record[K]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.flatten())
}

// UnmarshalJSON decodes a flat object. The id key is required; a missing or
// null parent_id means the record is a root.
func (r *Record[K]) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	idRaw, ok := raw[fieldID]
	if !ok {
		return fmt.Errorf("record: missing %q", fieldID)
	}
	var out Record[K]
	if err := json.Unmarshal(idRaw, &out.ID); err != nil {
		return fmt.Errorf("record: decode %s: %w", fieldID, err)
	}

	if p, ok := raw[fieldParentID]; ok && string(p) != "null" {
		var parent K
		if err := json.Unmarshal(p, &parent); err != nil {
			return fmt.Errorf("record %v: decode %s: %w", out.ID, fieldParentID, err)
		}
		out.ParentID = &parent
	}

	if t, ok := raw[fieldTitle]; ok && string(t) != "null" {
		if err := json.Unmarshal(t, &out.Title); err != nil {
			return fmt.Errorf("record %v: decode %s: %w", out.ID, fieldTitle, err)
		}
	}

	for k, v := range raw {
		switch k {
		case fieldID, fieldParentID, fieldTitle:
			continue
		}
		// Numbers stay json.Number so large integers survive a round trip.
		dec := json.NewDecoder(bytes.NewReader(v))
		dec.UseNumber()
		var val any
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("record %v: decode %s: %w", out.ID, k, err)
		}
		if out.Fields == nil {
			out.Fields = make(map[string]any)
		}
		out.Fields[k] = val
	}

	*r = out
	return nil
}
