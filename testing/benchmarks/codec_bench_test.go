package benchmarks

import (
	"context"
	"testing"

	"github.com/zoobzio/missive"
	"github.com/zoobzio/missive/cbor"
	"github.com/zoobzio/missive/json"
	"github.com/zoobzio/missive/msgpack"
	missivetest "github.com/zoobzio/missive/testing"
)

func benchmarkEncode(b *testing.B, s missive.Serializer) {
	c := missivetest.NewCodec(b, s)
	order := missivetest.SampleOrder()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Encode(context.Background(), order, nil)
	}
}

func benchmarkDecode(b *testing.B, s missive.Serializer) {
	c := missivetest.NewCodec(b, s)
	msg, err := c.Encode(context.Background(), missivetest.SampleOrder(), nil)
	if err != nil {
		b.Fatalf("Encode() error: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Decode(context.Background(), msg)
	}
}

func BenchmarkCodec_Encode_JSON(b *testing.B)    { benchmarkEncode(b, json.New()) }
func BenchmarkCodec_Encode_MsgPack(b *testing.B) { benchmarkEncode(b, msgpack.New()) }
func BenchmarkCodec_Encode_CBOR(b *testing.B)    { benchmarkEncode(b, cbor.New()) }

func BenchmarkCodec_Decode_JSON(b *testing.B)    { benchmarkDecode(b, json.New()) }
func BenchmarkCodec_Decode_MsgPack(b *testing.B) { benchmarkDecode(b, msgpack.New()) }
func BenchmarkCodec_Decode_CBOR(b *testing.B)    { benchmarkDecode(b, cbor.New()) }

func BenchmarkCodec_Decode_Latin1(b *testing.B) {
	c := missivetest.NewCodec(b, json.New())
	if err := c.SetDefaultCharset("ISO-8859-1"); err != nil {
		b.Fatalf("SetDefaultCharset() error: %v", err)
	}
	msg, err := c.Encode(context.Background(), missivetest.SampleOrder(), nil)
	if err != nil {
		b.Fatalf("Encode() error: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Decode(context.Background(), msg)
	}
}

func BenchmarkCodec_DecodeWithHint(b *testing.B) {
	c := missivetest.NewCodec(b, json.New())
	msg, err := c.Encode(context.Background(), missivetest.SampleOrder(), nil)
	if err != nil {
		b.Fatalf("Encode() error: %v", err)
	}
	hint := missive.TypeOf[missivetest.Order]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.DecodeWithHint(context.Background(), msg, hint)
	}
}
