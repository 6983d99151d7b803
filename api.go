// Package missive converts AMQP message bodies to and from typed Go values.
//
// A Codec sits between a Serializer (JSON, YAML, MessagePack, ...) and a
// message transport. It decides whether an inbound message is convertible,
// works out which Go type the body should become, and stamps outbound
// messages with the metadata a receiver needs to reverse the process.
//
// # Decoding
//
// Decode first checks the message content type:
//
//   - absent or "application/octet-stream": converted when AssumeSupportedContentType is on
//   - contains the codec subtype (e.g. "json"): converted
//   - anything else: the raw body is returned and a warning is logged
//
// The target type is then chosen in order:
//
//  1. projection, when the receiver declares a non-empty interface and projection is enabled
//  2. an explicit TypeRef passed as the conversion hint
//  3. the TypeMapper, reading the __TypeId__ headers (or the inferred type, per precedence)
//  4. a ClassMapper override, falling back to plain text when it cannot resolve a type
//
// # Encoding
//
// Encode marshals the value, transcodes it when the configured charset is not
// UTF-8, stamps content type, content encoding and content length, and writes
// the type headers.
//
// # Type identifiers
//
// Go cannot load a type by name, so every type that may arrive on the wire
// must be registered:
//
//	missive.Register[Order]()                      // id: github.com/acme/orders.Order
//	missive.Register[Order]("com.example.Order")   // also writes the alias
//
// Resolution is gated by a TrustList of namespace prefixes:
//
//	codec := missive.New(json.New(), "github.com/acme/orders")
//
// # Serializer Providers
//
// The following serializers are available as sub-packages:
//
//   - json - JSON encoding (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
//   - cbor - CBOR encoding (application/cbor)
package missive

import "reflect"

// DefaultContentType is the content type a fresh MessageProperties carries.
// Decode treats it like an absent content type.
const DefaultContentType = "application/octet-stream"

// Header keys carrying type identifiers. The names match Spring AMQP so
// messages interoperate with JVM consumers.
const (
	TypeIDHeader        = "__TypeId__"
	ContentTypeIDHeader = "__ContentTypeId__"
	KeyTypeIDHeader     = "__KeyTypeId__"
)

// Message is a body with its properties.
type Message struct {
	Body       []byte
	Properties *MessageProperties
}

// NewMessage returns a message with the given body and properties.
func NewMessage(body []byte, props *MessageProperties) *Message {
	return &Message{Body: body, Properties: props}
}

// MessageProperties holds message metadata.
type MessageProperties struct {
	// ContentType is the MIME type of the body.
	ContentType string

	// ContentEncoding names the charset of the body.
	ContentEncoding string

	// ContentLength is the body length in bytes.
	ContentLength int64

	// MessageID identifies the message.
	MessageID string

	// Headers holds application headers, including the type identifier headers.
	// Values follow AMQP table semantics (string, []byte, numbers, ...).
	Headers map[string]any

	// InferredType is the type the receiver declared for the payload.
	// It travels alongside the message, never on the wire.
	InferredType reflect.Type
}

// NewMessageProperties returns properties with the default content type.
func NewMessageProperties() *MessageProperties {
	return &MessageProperties{
		ContentType: DefaultContentType,
		Headers:     make(map[string]any),
	}
}

// SetHeader sets a header, allocating the header map when needed.
func (p *MessageProperties) SetHeader(key string, value any) {
	if p.Headers == nil {
		p.Headers = make(map[string]any)
	}
	p.Headers[key] = value
}

// Header returns a header value as a string.
// Byte slices are converted; other non-string values report false.
func (p *MessageProperties) Header(key string) (string, bool) {
	if p == nil || p.Headers == nil {
		return "", false
	}
	switch v := p.Headers[key].(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	default:
		return "", false
	}
}
