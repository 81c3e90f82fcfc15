package networking

import (
	"bytes"
	"encoding/json"
)

// Encoder serializes request bodies.
type Encoder interface {
	Encode(v any) ([]byte, error)
}

// Decoder deserializes response bodies into v.
type Decoder interface {
	Decode(data []byte, v any) error
}

// JSONEncoder encodes with encoding/json.
type JSONEncoder struct{}

func (JSONEncoder) Encode(v any) ([]byte, error) { return json.Marshal(v) }

// JSONDecoder decodes with encoding/json. Unknown fields are ignored unless
// Strict is set.
type JSONDecoder struct {
	Strict bool
}

func (d JSONDecoder) Decode(data []byte, v any) error {
	if !d.Strict {
		return json.Unmarshal(data, v)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
