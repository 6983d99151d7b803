// Package cbor provides a CBOR serializer (RFC 8949).
package cbor

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/zoobzio/missive"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = cbor.CanonicalEncOptions().EncMode(); err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// cborSerializer implements missive.Serializer for CBOR.
// Encoding is canonical, so equal values produce identical bodies.
type cborSerializer struct{}

// New returns a CBOR serializer. Untyped targets decode maps as map[string]any.
func New() missive.Serializer {
	return &cborSerializer{}
}

// ContentType returns the MIME type for CBOR.
func (s *cborSerializer) ContentType() string {
	return "application/cbor"
}

// Marshal encodes v as canonical CBOR.
func (s *cborSerializer) Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func (s *cborSerializer) Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}
