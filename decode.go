package missive

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Decode converts msg's body into a Go value.
//
// Messages whose content type the codec does not support are returned as
// their raw body ([]byte) with no error. See DecodeWithHint.
func (c *Codec) Decode(ctx context.Context, msg *Message) (any, error) {
	return c.DecodeWithHint(ctx, msg, nil)
}

// DecodeWithHint converts msg's body into a Go value. A TypeRef (or *TypeRef)
// hint decodes into that type directly, bypassing the type headers. Other
// hint values are ignored.
//
// The result is the decoded value, the raw body when the message is not
// convertible, or a string when a ClassMapper could not resolve a type.
// Failures are returned as *ConversionError.
func (c *Codec) DecodeWithHint(ctx context.Context, msg *Message, hint any) (any, error) {
	if msg == nil {
		return nil, nil
	}
	props := msg.Properties
	if props == nil {
		return msg.Body, nil
	}
	if !c.convertible(ctx, props.ContentType) {
		return msg.Body, nil
	}

	start := time.Now()
	c.signals.emitDecodeStart(ctx, props.ContentType)

	result, err := c.convert(ctx, msg, hintType(hint))

	typeName := ""
	if result != nil {
		typeName = DefaultRegistry().Name(reflect.TypeOf(result))
	}
	c.signals.emitDecodeComplete(ctx, props.ContentType, typeName, len(msg.Body), time.Since(start), err)

	if err != nil {
		return nil, err
	}
	if result == nil {
		return msg.Body, nil
	}
	return result, nil
}

// DecodeAs decodes msg into T. Non-interface types, including containers
// of interfaces such as map[string]any, are decoded directly; for interface types T is carried as the inferred type so projection and the
// type headers can pick an implementation.
func DecodeAs[T any](ctx context.Context, c *Codec, msg *Message) (T, error) {
	var zero T
	target := reflect.TypeFor[T]()

	var (
		v   any
		err error
	)
	if !isAbstract(target) {
		v, err = c.DecodeWithHint(ctx, msg, TypeOf[T]())
	} else {
		v, err = c.Decode(ctx, withInferredType(msg, target))
	}
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, NewConversionError(opDecode, ErrUnexpectedValue, fmt.Errorf("got %T, want %s", v, target))
	}
	return out, nil
}

// convertible applies the content type gate.
func (c *Codec) convertible(ctx context.Context, contentType string) bool {
	if c.assumeSupportedContentType && (contentType == "" || contentType == DefaultContentType) {
		return true
	}
	if contentType != "" && strings.Contains(strings.ToLower(contentType), c.subtype) {
		return true
	}
	c.logger.Warn("could not convert incoming message, content type not supported",
		zap.String("content_type", contentType),
		zap.String("expected_subtype", c.subtype),
	)
	c.signals.emitContentTypeRejected(ctx, contentType, c.subtype)
	return false
}

func (c *Codec) convert(ctx context.Context, msg *Message, hint reflect.Type) (any, error) {
	props := msg.Properties

	cs := c.charset
	if props.ContentEncoding != "" {
		found, err := lookupCharset(props.ContentEncoding)
		if err != nil {
			return nil, NewConversionError(opDecode, ErrCharset, err)
		}
		cs = found
	}
	body, err := cs.toUTF8(msg.Body)
	if err != nil {
		return nil, NewConversionError(opDecode, ErrCharset, err)
	}

	if c.useProjection {
		if inferred := c.typeMapper.InferredType(props); inferred != nil && isProjectable(inferred) {
			v, err := c.projector.Project(body, inferred)
			if err != nil {
				return nil, asConversionError(opDecode, ErrUnmarshal, err)
			}
			return v, nil
		}
	}

	if hint != nil {
		return c.unmarshal(body, hint)
	}

	target, err := c.resolution.targetType(props)
	if err != nil {
		var ce *ConversionError
		if c.resolution.lenient() && errors.As(err, &ce) {
			c.logger.Debug("class mapper could not resolve a type, returning body as text",
				zap.Error(err),
			)
			c.signals.emitTextFallback(ctx, len(body), err)
			return string(body), nil
		}
		return nil, NewConversionError(opDecode, ErrResolveType, err)
	}
	return c.unmarshal(body, target)
}

// unmarshal decodes body into a new value of type t. A nil result, such as
// null decoded into a slice, is returned as an untyped nil.
func (c *Codec) unmarshal(body []byte, t reflect.Type) (any, error) {
	if t == nil {
		t = anyType
	}
	ptr := reflect.New(t)
	if err := c.serializer.Unmarshal(body, ptr.Interface()); err != nil {
		return nil, NewConversionError(opDecode, ErrUnmarshal, err)
	}
	v := ptr.Elem()
	if isNilable(v.Kind()) && v.IsNil() {
		return nil, nil
	}
	return v.Interface(), nil
}

func isNilable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}

// hintType extracts the type from a TypeRef hint.
func hintType(hint any) reflect.Type {
	switch h := hint.(type) {
	case TypeRef:
		return h.Type()
	case *TypeRef:
		if h != nil {
			return h.Type()
		}
	}
	return nil
}

// withInferredType returns a shallow copy of msg whose properties carry t.
func withInferredType(msg *Message, t reflect.Type) *Message {
	if msg == nil || msg.Properties == nil {
		return msg
	}
	props := *msg.Properties
	props.InferredType = t
	return &Message{Body: msg.Body, Properties: &props}
}
