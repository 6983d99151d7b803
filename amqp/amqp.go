// Package amqp carries missive messages over RabbitMQ via AMQP 0-9-1.
//
// FromDelivery and ToPublishing map between missive messages and the
// amqp091 client types. Publisher encodes values and publishes them through a
// pipz pipeline; Consumer decodes deliveries and settles them.
package amqp

import (
	"context"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/zoobzio/missive"
)

// Channel is the subset of *amqp.Channel used by Publisher and Consumer.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	ConsumeWithContext(ctx context.Context, queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

var _ Channel = (*amqp.Channel)(nil)

// FromDelivery converts a delivery into a message.
// Byte-slice and array header values are normalized to strings.
func FromDelivery(d amqp.Delivery) *missive.Message {
	props := &missive.MessageProperties{
		ContentType:     d.ContentType,
		ContentEncoding: d.ContentEncoding,
		ContentLength:   int64(len(d.Body)),
		MessageID:       d.MessageId,
		Headers:         make(map[string]any, len(d.Headers)),
	}
	for k, v := range d.Headers {
		props.Headers[k] = normalizeHeader(v)
	}
	return missive.NewMessage(d.Body, props)
}

// ToPublishing converts a message into a publishing.
func ToPublishing(msg *missive.Message) amqp.Publishing {
	pub := amqp.Publishing{Body: msg.Body}
	props := msg.Properties
	if props == nil {
		return pub
	}
	pub.ContentType = props.ContentType
	pub.ContentEncoding = props.ContentEncoding
	pub.MessageId = props.MessageID
	if len(props.Headers) > 0 {
		pub.Headers = make(amqp.Table, len(props.Headers))
		for k, v := range props.Headers {
			pub.Headers[k] = v
		}
	}
	return pub
}

// normalizeHeader converts AMQP byte and array header values to strings.
// Other values are kept as is.
func normalizeHeader(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case []any:
		return headerValueToString(val)
	default:
		return v
	}
}

// headerValueToString converts AMQP header values to strings.
// Arrays are joined with commas.
func headerValueToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, headerValueToString(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", val)
	}
}
