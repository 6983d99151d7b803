package amqp

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/zoobzio/missive"
	"go.uber.org/zap"
)

// Handler processes a decoded value. Returning an error requeues the delivery.
type Handler func(ctx context.Context, v any, msg *missive.Message) error

// Consumer decodes deliveries from a queue and settles them:
// acked when the handler succeeds, requeued when it fails, and rejected
// without requeue when the body cannot be decoded.
type Consumer struct {
	channel  Channel
	codec    *missive.Codec
	queue    string
	tag      string
	inferred reflect.Type
	logger   *zap.Logger
}

// ConsumerOption configures a Consumer.
type ConsumerOption func(*Consumer)

// WithConsumerTag sets the consumer tag.
func WithConsumerTag(tag string) ConsumerOption {
	return func(c *Consumer) {
		c.tag = tag
	}
}

// WithInferredType declares the type the handler expects. It is carried on
// each message as its inferred type.
func WithInferredType(t reflect.Type) ConsumerOption {
	return func(c *Consumer) {
		c.inferred = t
	}
}

// WithConsumerLogger sets the logger for settlement diagnostics.
func WithConsumerLogger(l *zap.Logger) ConsumerOption {
	return func(c *Consumer) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewConsumer creates a Consumer for queue on ch.
func NewConsumer(ch Channel, codec *missive.Codec, queue string, opts ...ConsumerOption) *Consumer {
	c := &Consumer{
		channel: ch,
		codec:   codec,
		queue:   queue,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run consumes until ctx is done or the delivery channel closes.
func (c *Consumer) Run(ctx context.Context, handler Handler) error {
	if c.channel == nil {
		return ErrNoChannel
	}
	deliveries, err := c.channel.ConsumeWithContext(ctx, c.queue, c.tag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			if err := c.Handle(ctx, d, handler); err != nil {
				c.logger.Error("failed to settle delivery",
					zap.String("queue", c.queue),
					zap.Uint64("delivery_tag", d.DeliveryTag),
					zap.Error(err),
				)
			}
		}
	}
}

// Handle decodes one delivery, runs handler and settles the delivery.
// The returned error is the settlement error, if any.
func (c *Consumer) Handle(ctx context.Context, d amqp.Delivery, handler Handler) error {
	msg := FromDelivery(d)
	if c.inferred != nil {
		msg.Properties.InferredType = c.inferred
	}

	v, err := c.codec.Decode(ctx, msg)
	if err != nil {
		var ce *missive.ConversionError
		if errors.As(err, &ce) {
			c.logger.Warn("rejecting undecodable message",
				zap.String("queue", c.queue),
				zap.String("message_id", d.MessageId),
				zap.Error(err),
			)
			return d.Reject(false)
		}
		return d.Nack(false, true)
	}

	if err := handler(ctx, v, msg); err != nil {
		c.logger.Debug("handler failed, requeueing",
			zap.String("queue", c.queue),
			zap.String("message_id", d.MessageId),
			zap.Error(err),
		)
		return d.Nack(false, true)
	}
	return d.Ack(false)
}
