package missive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zoobzio/capitan"
)

func TestEmitDecodeStart(_ *testing.T) {
	// Should not panic
	emitter{}.emitDecodeStart(context.Background(), "application/json")
}

func TestEmitDecodeComplete_Success(_ *testing.T) {
	emitter{}.emitDecodeComplete(context.Background(), "application/json", "Order", 42, 100*time.Millisecond, nil)
}

func TestEmitDecodeComplete_Error(_ *testing.T) {
	emitter{}.emitDecodeComplete(context.Background(), "application/json", "", 42, 100*time.Millisecond, errors.New("test error"))
}

func TestEmitEncodeStart(_ *testing.T) {
	emitter{}.emitEncodeStart(context.Background(), "application/json", "Order")
}

func TestEmitEncodeComplete_Success(_ *testing.T) {
	emitter{}.emitEncodeComplete(context.Background(), "application/json", "Order", 42, 100*time.Millisecond, nil)
}

func TestEmitEncodeComplete_Error(_ *testing.T) {
	emitter{}.emitEncodeComplete(context.Background(), "application/json", "Order", 0, 100*time.Millisecond, errors.New("test error"))
}

func TestEmitContentTypeRejected(_ *testing.T) {
	emitter{}.emitContentTypeRejected(context.Background(), "text/plain", "json")
}

func TestEmitTextFallback(_ *testing.T) {
	emitter{}.emitTextFallback(context.Background(), 12, errors.New("unknown type"))
}

func TestEmitter_CustomCapitan(t *testing.T) {
	c := capitan.New(capitan.WithSyncMode())
	defer c.Shutdown()

	var starts, completes int
	c.Hook(SignalDecodeStart, func(_ context.Context, _ *capitan.Event) {
		starts++
	})
	c.Hook(SignalDecodeComplete, func(_ context.Context, _ *capitan.Event) {
		completes++
	})

	em := emitter{capitan: c}
	em.emitDecodeStart(context.Background(), "application/json")
	em.emitDecodeComplete(context.Background(), "application/json", "Order", 1, time.Millisecond, nil)
	em.emitDecodeComplete(context.Background(), "application/json", "", 1, time.Millisecond, errors.New("boom"))

	if starts != 1 {
		t.Errorf("decode start events = %d, want 1", starts)
	}
	if completes != 2 {
		t.Errorf("decode complete events = %d, want 2", completes)
	}
}

func TestSignalVariables(t *testing.T) {
	signals := []struct {
		name   string
		signal capitan.Signal
	}{
		{"SignalDecodeStart", SignalDecodeStart},
		{"SignalDecodeComplete", SignalDecodeComplete},
		{"SignalEncodeStart", SignalEncodeStart},
		{"SignalEncodeComplete", SignalEncodeComplete},
		{"SignalContentTypeRejected", SignalContentTypeRejected},
		{"SignalTextFallback", SignalTextFallback},
	}

	seen := make(map[string]bool)
	for _, s := range signals {
		t.Run(s.name, func(t *testing.T) {
			name := s.signal.Name()
			if name == "" {
				t.Errorf("%s has empty name", s.name)
			}
			if seen[name] {
				t.Errorf("%s reuses signal name %q", s.name, name)
			}
			seen[name] = true
		})
	}
}
