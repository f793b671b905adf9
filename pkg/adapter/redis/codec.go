package redis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrymomot/activerecord/pkg/adapter"
)

// EncodeRow serializes a row for storage.
func EncodeRow(row adapter.Row) (string, error) {
	b, err := json.Marshal(row)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeRow parses a stored row. Integral numbers decode as int64, others
// as float64.
func DecodeRow(data string) (adapter.Row, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.UseNumber()
	var row adapter.Row
	if err := dec.Decode(&row); err != nil {
		return nil, errors.Join(ErrCorruptRow, err)
	}
	for k, v := range row {
		row[k] = normalize(v)
	}
	return row, nil
}

func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, item := range t {
			t[k] = normalize(item)
		}
	case []any:
		for i, item := range t {
			t[i] = normalize(item)
		}
	}
	return v
}

// FieldKey is the hash field under which a row with the given id is stored.
func FieldKey(id any) string {
	switch n := id.(type) {
	case float64:
		if n == float64(int64(n)) {
			return strconv.FormatInt(int64(n), 10)
		}
	case float32:
		if n == float32(int64(n)) {
			return strconv.FormatInt(int64(n), 10)
		}
	}
	return fmt.Sprint(id)
}
