// Package xml provides an XML serializer.
package xml

import (
	"encoding/xml"

	"github.com/zoobzio/missive"
)

// Option configures the XML serializer.
type Option func(*xmlSerializer)

// WithDeclaration prefixes encoded bodies with the standard XML declaration.
func WithDeclaration() Option {
	return func(s *xmlSerializer) {
		s.declaration = true
	}
}

// xmlSerializer implements missive.Serializer for XML.
// XML has no untyped decode target, so messages must resolve to a concrete type.
type xmlSerializer struct {
	declaration bool
}

// New returns an XML serializer.
func New(opts ...Option) missive.Serializer {
	s := &xmlSerializer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ContentType returns the MIME type for XML.
func (s *xmlSerializer) ContentType() string {
	return "application/xml"
}

// Marshal encodes v as XML.
func (s *xmlSerializer) Marshal(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil || !s.declaration {
		return data, err
	}
	return append([]byte(xml.Header), data...), nil
}

// Unmarshal decodes XML data into v.
func (s *xmlSerializer) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}
