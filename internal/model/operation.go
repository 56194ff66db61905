package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// Operation is one document-edit instruction. On the wire it is an object
// with exactly one key, the kind, whose value is the kind's payload.
type Operation struct {
	Payload Payload
	// Raw is the compact payload as decoded, kept only when Payload cannot
	// reproduce it (fields the struct does not declare, keys in another
	// case). When set it is what MarshalJSON writes, so Payload is a read
	// view; build a new Operation with New to change one.
	Raw json.RawMessage
}

// New wraps p in an Operation.
func New(p Payload) Operation {
	return Operation{Payload: p}
}

// Kind returns the operation's kind, or "" for an empty operation.
func (o Operation) Kind() Kind {
	if o.Payload == nil {
		return ""
	}
	return o.Payload.Kind()
}

func (o Operation) MarshalJSON() ([]byte, error) {
	if o.Payload == nil {
		return nil, errors.New("operation has no payload")
	}
	var body []byte
	if len(o.Raw) > 0 {
		body = o.Raw
	} else if u, ok := o.Payload.(*Unknown); ok {
		body = u.Raw
		if len(body) == 0 {
			body = []byte("{}")
		}
	} else {
		var err error
		body, err = encode(o.Payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", o.Kind(), err)
		}
	}
	key, err := encode(string(o.Kind()))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(body)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o *Operation) UnmarshalJSON(data []byte) error {
	o.Raw = nil
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("operation must be a JSON object: %w", err)
	}
	if len(fields) != 1 {
		return fmt.Errorf("operation must have exactly one top-level key, found %d", len(fields))
	}
	for key, raw := range fields {
		kind := Kind(key)
		p := NewPayload(kind)
		if p == nil {
			u, err := NewUnknown(kind, raw)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", kind, err)
			}
			o.Payload = u
			return nil
		}
		if err := json.Unmarshal(raw, p); err != nil {
			return fmt.Errorf("decoding %s: %w", kind, err)
		}
		keep, err := residue(raw, p)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", kind, err)
		}
		o.Payload, o.Raw = p, keep
	}
	return nil
}

// residue returns raw compacted when re-encoding p would not give back the
// same JSON value, and nil when p carries all of it. Key order and
// whitespace are not compared.
func residue(raw json.RawMessage, p Payload) (json.RawMessage, error) {
	typed, err := encode(p)
	if err != nil {
		return nil, err
	}
	var want, got any
	if err := json.Unmarshal(raw, &want); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(typed, &got); err != nil {
		return nil, err
	}
	if reflect.DeepEqual(want, got) {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}

// encode marshals v without HTML escaping and without a trailing newline.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
