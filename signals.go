package missive

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for codec events.
var (
	SignalDecodeStart         = capitan.NewSignal("missive.decode.start", "Decode operation beginning")
	SignalDecodeComplete      = capitan.NewSignal("missive.decode.complete", "Decode operation finished")
	SignalEncodeStart         = capitan.NewSignal("missive.encode.start", "Encode operation beginning")
	SignalEncodeComplete      = capitan.NewSignal("missive.encode.complete", "Encode operation finished")
	SignalContentTypeRejected = capitan.NewSignal("missive.content_type.rejected", "Message passed through unconverted")
	SignalTextFallback        = capitan.NewSignal("missive.text.fallback", "Class mapper failed, body returned as text")
)

// Keys for typed event data.
var (
	KeyContentType     = capitan.NewStringKey("content_type")
	KeyExpectedSubtype = capitan.NewStringKey("expected_subtype")
	KeyTypeName        = capitan.NewStringKey("type_name")
	KeySize            = capitan.NewIntKey("size")
	KeyDuration        = capitan.NewDurationKey("duration")
	KeyError           = capitan.NewErrorKey("error")
)

// emitter routes events to a configured Capitan instance or the package default.
type emitter struct {
	capitan *capitan.Capitan
}

func (em emitter) emit(ctx context.Context, signal capitan.Signal, fields ...capitan.Field) {
	if em.capitan != nil {
		em.capitan.Emit(ctx, signal, fields...)
		return
	}
	capitan.Emit(ctx, signal, fields...)
}

func (em emitter) fail(ctx context.Context, signal capitan.Signal, fields ...capitan.Field) {
	if em.capitan != nil {
		em.capitan.Error(ctx, signal, fields...)
		return
	}
	capitan.Error(ctx, signal, fields...)
}

// emitDecodeStart emits an event when decode begins.
func (em emitter) emitDecodeStart(ctx context.Context, contentType string) {
	em.emit(ctx, SignalDecodeStart,
		KeyContentType.Field(contentType),
	)
}

// emitDecodeComplete emits an event when decode finishes.
func (em emitter) emitDecodeComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		em.fail(ctx, SignalDecodeComplete, fields...)
	} else {
		em.emit(ctx, SignalDecodeComplete, fields...)
	}
}

// emitEncodeStart emits an event when encode begins.
func (em emitter) emitEncodeStart(ctx context.Context, contentType, typeName string) {
	em.emit(ctx, SignalEncodeStart,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitEncodeComplete emits an event when encode finishes.
func (em emitter) emitEncodeComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		em.fail(ctx, SignalEncodeComplete, fields...)
	} else {
		em.emit(ctx, SignalEncodeComplete, fields...)
	}
}

// emitContentTypeRejected emits an event when a message is passed through raw.
func (em emitter) emitContentTypeRejected(ctx context.Context, contentType, expected string) {
	em.emit(ctx, SignalContentTypeRejected,
		KeyContentType.Field(contentType),
		KeyExpectedSubtype.Field(expected),
	)
}

// emitTextFallback emits an event when the class mapper path degrades to text.
func (em emitter) emitTextFallback(ctx context.Context, size int, err error) {
	em.emit(ctx, SignalTextFallback,
		KeySize.Field(size),
		KeyError.Field(err),
	)
}
