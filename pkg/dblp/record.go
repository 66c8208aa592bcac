// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"encoding/json"
	"fmt"
)

// Record is one bibliographic entry extracted from the dump: a mapping from
// field name to either a string or an ordered []string for fields that occur
// multiple times within one element. Every record carries "type" with the
// source element's tag; "key" and "mdate" appear when attribute extraction
// is requested.
type Record map[string]any

// Type returns the record kind (article, inproceedings, ...).
func (r Record) Type() string { return r.scalar("type") }

// Key returns the DBLP key attribute, or "" if not extracted.
func (r Record) Key() string { return r.scalar("key") }

// Mdate returns the last-modified attribute, or "" if not extracted.
func (r Record) Mdate() string { return r.scalar("mdate") }

// Year returns the publication year, or "" if the record has none.
func (r Record) Year() string { return r.scalar("year") }

// Strings returns the values of a field: the list itself for list fields,
// a one-element slice for scalars, nil when the field is absent.
func (r Record) Strings(field string) []string {
	switch v := r[field].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	}
	return nil
}

func (r Record) scalar(field string) string {
	s, _ := r[field].(string)
	return s
}

// MarshalLine serializes the record as a single JSON object with no
// trailing newline.
func (r Record) MarshalLine() ([]byte, error) {
	return json.Marshal(r)
}

// ParseLine parses one serialized record line back into a Record. Together
// with MarshalLine it round-trips: the parsed mapping equals the original.
func ParseLine(data []byte) (Record, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing record line: %w", err)
	}

	rec := make(Record, len(raw))
	for field, value := range raw {
		switch v := value.(type) {
		case string:
			rec[field] = v
		case []any:
			values := make([]string, 0, len(v))
			for _, e := range v {
				s, ok := e.(string)
				if !ok {
					return nil, fmt.Errorf("field %q: unexpected element of type %T", field, e)
				}
				values = append(values, s)
			}
			rec[field] = values
		default:
			return nil, fmt.Errorf("field %q: unexpected value of type %T", field, value)
		}
	}
	return rec, nil
}
