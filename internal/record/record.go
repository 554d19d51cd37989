package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Decode reads a single JSON object. Numbers are kept as json.Number so that
// large ids survive the round trip.
func Decode(r io.Reader) (Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	if rec == nil {
		rec = Record{}
	}
	return rec, nil
}

// DecodeList reads a JSON array of objects.
func DecodeList(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var recs []Record
	if err := dec.Decode(&recs); err != nil {
		return nil, fmt.Errorf("failed to decode record list: %w", err)
	}
	return recs, nil
}

// Parse decodes a JSON object held in memory.
func Parse(data []byte) (Record, error) {
	return Decode(bytes.NewReader(data))
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Lookup returns the first non-nil value stored under one of keys.
func (r Record) Lookup(keys Keys) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Nested returns the first value under keys that is itself an object.
func (r Record) Nested(keys Keys) (Record, bool) {
	for _, k := range keys {
		if m, ok := asRecord(r[k]); ok {
			return m, true
		}
	}
	return nil, false
}

// Number returns the first value under keys that coerces to an integer.
// Keys holding non-numeric values are skipped.
func (r Record) Number(keys Keys) (int64, bool) {
	for _, k := range keys {
		if n, ok := ToNumber(r[k]); ok {
			return n, true
		}
	}
	return 0, false
}

// Text returns the first value under keys that is a non-blank string, trimmed.
func (r Record) Text(keys Keys) (string, bool) {
	for _, k := range keys {
		s, ok := r[k].(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s, true
		}
	}
	return "", false
}

// Flag returns the first value under keys that is a boolean or a
// "true"/"false" string.
func (r Record) Flag(keys Keys) (bool, bool) {
	for _, k := range keys {
		switch v := r[k].(type) {
		case bool:
			return v, true
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true":
				return true, true
			case "false":
				return false, true
			}
		}
	}
	return false, false
}

// Key returns the first value under keys rendered as a string key, accepting
// both numbers and non-blank strings.
func (r Record) Key(keys Keys) (string, bool) {
	for _, k := range keys {
		if n, ok := ToNumber(r[k]); ok {
			return strconv.FormatInt(n, 10), true
		}
		if s, ok := r[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), true
		}
	}
	return "", false
}

// Delete removes every key in keys.
func (r Record) Delete(keys Keys) {
	for _, k := range keys {
		delete(r, k)
	}
}

// ToNumber coerces numeric values and numeric-looking strings to an integer.
// Fractional values are rejected.
func ToNumber(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return fromFloat(float64(n))
	case float64:
		return fromFloat(n)
	case json.Number:
		return fromString(n.String())
	case string:
		return fromString(n)
	}
	return 0, false
}

func fromString(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return fromFloat(f)
}

func fromFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func asRecord(v any) (Record, bool) {
	switch m := v.(type) {
	case Record:
		return m, true
	case map[string]any:
		return Record(m), true
	}
	return nil, false
}

// List returns the first value under keys that is an array of objects.
func (r Record) List(keys Keys) ([]Record, bool) {
	for _, k := range keys {
		raw, ok := r[k].([]any)
		if !ok {
			if typed, ok := r[k].([]Record); ok {
				return typed, true
			}
			continue
		}
		out := make([]Record, 0, len(raw))
		for _, item := range raw {
			if m, ok := asRecord(item); ok {
				out = append(out, m)
			}
		}
		return out, true
	}
	return nil, false
}
