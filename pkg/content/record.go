package content

import (
	"encoding/json"
)

// Record is a content record as stored on disk: an open JSON object
type Record map[string]any

// Index is the on-disk shape of <section>.index.json
type Index struct {
	Items []Record `json:"items"`
}

// ID returns the record id, or "" when absent or not a string
func (r Record) ID() string {
	return r.String("id")
}

// String returns the string value of key, or ""
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Records returns the value of key as a list of records, skipping non-objects
func (r Record) Records(key string) []Record {
	raw, _ := r[key].([]any)
	out := make([]Record, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case map[string]any:
			out = append(out, Record(v))
		case Record:
			out = append(out, v)
		}
	}
	return out
}

// Project copies the given fields of r into a new record
func (r Record) Project(fields []string) Record {
	out := make(Record, len(fields))
	for _, f := range fields {
		if v, ok := r[f]; ok {
			out[f] = v
		}
	}
	return out
}

// Merge copies the given fields present in src into r; nil fields copies all.
// The id is never overwritten.
func (r Record) Merge(src Record, fields []string) {
	if fields == nil {
		for k, v := range src {
			if k == "id" {
				continue
			}
			r[k] = v
		}
		return
	}
	for _, f := range fields {
		if f == "id" {
			continue
		}
		if v, ok := src[f]; ok {
			r[f] = v
		}
	}
}

// Clone deep-copies r through its JSON form
func (r Record) Clone() Record {
	data, err := json.Marshal(r)
	if err != nil {
		return Record{}
	}
	var out Record
	if err := json.Unmarshal(data, &out); err != nil {
		return Record{}
	}
	return out
}

// FindIndex returns the position of the record with id in items, or -1
func FindIndex(items []Record, id string) int {
	for i, item := range items {
		if item.ID() == id {
			return i
		}
	}
	return -1
}

// ToAny converts records back into a JSON array value
func ToAny(items []Record) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = map[string]any(item)
	}
	return out
}
