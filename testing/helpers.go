// Package testing provides fixtures and helpers for exercising missive codecs.
package testing

import (
	"context"
	"testing"

	"github.com/zoobzio/missive"
)

// Namespace is the trusted namespace fixtures are registered under.
const Namespace = "com.example.orders"

// LineItem is a nested fixture.
type LineItem struct {
	SKU      string `json:"sku" yaml:"sku" xml:"sku" bson:"sku"`
	Quantity int    `json:"quantity" yaml:"quantity" xml:"quantity" bson:"quantity"`
}

// Order is a fixture tagged for every bundled serializer.
// msgpack and cbor read the json tags.
type Order struct {
	ID       string     `json:"id" yaml:"id" xml:"id" bson:"id"`
	Customer string     `json:"customer" yaml:"customer" xml:"customer" bson:"customer"`
	Items    []LineItem `json:"items" yaml:"items" xml:"item" bson:"items"`
}

// SampleOrder returns a populated Order.
func SampleOrder() Order {
	return Order{
		ID:       "ord-1",
		Customer: "alice",
		Items: []LineItem{
			{SKU: "sku-1", Quantity: 2},
			{SKU: "sku-2", Quantity: 1},
		},
	}
}

// RegisterFixtures resets the default registry and registers the fixtures
// under Namespace. The registry is reset again when tb finishes.
func RegisterFixtures(tb testing.TB) {
	tb.Helper()
	missive.Reset()
	missive.Register[Order](Namespace + ".Order")
	missive.Register[LineItem](Namespace + ".LineItem")
	tb.Cleanup(missive.Reset)
}

// NewCodec registers the fixtures and returns a codec for s trusting Namespace.
func NewCodec(tb testing.TB, s missive.Serializer) *missive.Codec {
	tb.Helper()
	RegisterFixtures(tb)
	c, err := missive.New(s, Namespace)
	if err != nil {
		tb.Fatalf("missive.New() error: %v", err)
	}
	return c
}

// RoundTrip encodes v and decodes the result, failing tb on error.
func RoundTrip(tb testing.TB, c *missive.Codec, v any) (*missive.Message, any) {
	tb.Helper()
	msg, err := c.Encode(context.Background(), v, nil)
	if err != nil {
		tb.Fatalf("Encode() error: %v", err)
	}
	got, err := c.Decode(context.Background(), msg)
	if err != nil {
		tb.Fatalf("Decode() error: %v", err)
	}
	return msg, got
}
