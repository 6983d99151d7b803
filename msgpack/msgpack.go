// Package msgpack provides a MessagePack serializer.
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/missive"
)

// msgpackSerializer implements missive.Serializer for MessagePack.
// Struct fields are keyed by their json tag so one set of message types
// serves every format.
type msgpackSerializer struct {
	tag string
}

// New returns a MessagePack serializer keyed by json struct tags.
func New() missive.Serializer {
	return &msgpackSerializer{tag: "json"}
}

// NewWithTag returns a MessagePack serializer keyed by the given struct tag.
// An empty tag uses the msgpack tag.
func NewWithTag(tag string) missive.Serializer {
	return &msgpackSerializer{tag: tag}
}

// ContentType returns the MIME type for MessagePack.
func (s *msgpackSerializer) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (s *msgpackSerializer) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if s.tag != "" {
		enc.SetCustomStructTag(s.tag)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes MessagePack data into v.
func (s *msgpackSerializer) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	if s.tag != "" {
		dec.SetCustomStructTag(s.tag)
	}
	return dec.Decode(v)
}
