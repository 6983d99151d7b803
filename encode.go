package missive

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Encode marshals v into a message, stamping content type, content encoding,
// content length and the type headers onto props. Nil props are created.
func (c *Codec) Encode(ctx context.Context, v any, props *MessageProperties) (*Message, error) {
	return c.EncodeWithType(ctx, v, props, TypeRef{})
}

// EncodeWithType is Encode with an explicit type for the type headers, useful
// for containers whose element type the runtime value cannot reveal.
// A non-container interface type is ignored in favour of v's runtime type.
func (c *Codec) EncodeWithType(ctx context.Context, v any, props *MessageProperties, ref TypeRef) (msg *Message, err error) {
	if props == nil {
		props = NewMessageProperties()
	}
	runtime := reflect.TypeOf(v)
	typeName := DefaultRegistry().Name(runtime)

	start := time.Now()
	c.signals.emitEncodeStart(ctx, c.contentType, typeName)
	defer func() {
		size := 0
		if msg != nil {
			size = len(msg.Body)
		}
		c.signals.emitEncodeComplete(ctx, c.contentType, typeName, size, time.Since(start), err)
	}()

	data, err := c.serializer.Marshal(v)
	if err != nil {
		return nil, NewConversionError(opEncode, ErrMarshal, err)
	}
	body, err := c.charset.fromUTF8(data)
	if err != nil {
		return nil, NewConversionError(opEncode, ErrCharset, err)
	}

	props.ContentType = c.contentType
	props.ContentEncoding = c.charset.name
	props.ContentLength = int64(len(body))
	c.resolution.writeType(runtime, ref.Type(), props)

	if c.createMessageIDs && props.MessageID == "" {
		props.MessageID = uuid.NewString()
	}
	return NewMessage(body, props), nil
}
