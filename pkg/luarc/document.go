// Package luarc reads and rewrites .luarc.json files while keeping every key it does not
// own in place.
package luarc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Document is a JSON object that remembers key order.
// Values are kept as raw JSON, so keys the caller never touches survive a rewrite.
type Document struct {
	keys   []string
	fields map[string]json.RawMessage
}

func NewDocument() *Document {
	return &Document{fields: map[string]json.RawMessage{}}
}

// Parse decodes data into a Document. A repeated key keeps its first position and its
// last value.
func Parse(data []byte) (*Document, error) {
	if err := validateObject(data); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	doc := NewDocument()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode %q: %w", key, err)
		}
		doc.setRaw(key, raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level object")
	}
	return doc, nil
}

// Keys returns the keys in document order.
func (d *Document) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Get decodes the value under key into out. It reports false when the key is absent.
func (d *Document) Get(key string, out any) (bool, error) {
	raw, ok := d.fields[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return true, nil
}

// Set encodes v under key. An existing key keeps its position, a new key is appended.
func (d *Document) Set(key string, v any) error {
	raw, err := encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	d.setRaw(key, raw)
	return nil
}

func (d *Document) setRaw(key string, raw json.RawMessage) {
	if _, ok := d.fields[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.fields[key] = raw
}

func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := encode(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(d.fields[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Render returns the document indented with two spaces, without a trailing newline.
func (d *Document) Render() ([]byte, error) {
	raw, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// encode marshals v without HTML escaping, "table<string, any>" stays as is.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
