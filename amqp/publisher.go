package amqp

import (
	"context"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/zoobzio/missive"
	"github.com/zoobzio/pipz"
)

// Internal identities for the publisher.
var (
	publishID         = pipz.NewIdentity("missive:publish", "Encodes and publishes to the broker")
	publishPipelineID = pipz.NewIdentity("missive:publisher", "Publisher pipeline")
)

// ErrNoChannel is returned when a Publisher or Consumer has no channel.
var ErrNoChannel = errors.New("amqp: no channel")

// Envelope carries a value through the publish pipeline.
type Envelope struct {
	// Value is the payload to encode.
	Value any

	// Type optionally names the type written to the type headers.
	Type missive.TypeRef

	// Properties are stamped by the codec. Nil properties are created.
	Properties *missive.MessageProperties

	// Message is the encoded message, set once encoding succeeds.
	Message *missive.Message
}

// Publisher encodes values with a Codec and publishes them to an exchange.
type Publisher struct {
	channel      Channel
	codec        *missive.Codec
	exchange     string
	key          string
	mandatory    bool
	deliveryMode uint8
	pipeline     *pipz.Pipeline[*Envelope]
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithExchange sets the exchange name for publishing.
func WithExchange(exchange string) PublisherOption {
	return func(p *Publisher) {
		p.exchange = exchange
	}
}

// WithRoutingKey sets the routing key for publishing.
func WithRoutingKey(key string) PublisherOption {
	return func(p *Publisher) {
		p.key = key
	}
}

// WithMandatory marks publishings mandatory, so unroutable messages are returned.
func WithMandatory() PublisherOption {
	return func(p *Publisher) {
		p.mandatory = true
	}
}

// WithPersistent publishes messages with persistent delivery mode.
func WithPersistent() PublisherOption {
	return func(p *Publisher) {
		p.deliveryMode = amqp.Persistent
	}
}

// NewPublisher creates a Publisher on ch.
//
// Parameters:
//   - ch: AMQP channel, usually an *amqp.Channel
//   - codec: codec used to encode values
//   - pipelineOpts: reliability middleware (retry, backoff, timeout); nil for none
//   - opts: publisher configuration (exchange, routing key, delivery mode)
func NewPublisher(ch Channel, codec *missive.Codec, pipelineOpts []Option, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		channel: ch,
		codec:   codec,
	}
	for _, opt := range opts {
		opt(p)
	}

	chain := newPublishTerminal(p)
	for _, opt := range pipelineOpts {
		chain = opt(chain)
	}
	p.pipeline = pipz.NewPipeline(publishPipelineID, chain)
	return p
}

// newPublishTerminal creates the terminal operation that encodes and publishes.
func newPublishTerminal(p *Publisher) pipz.Chainable[*Envelope] {
	return pipz.Apply(publishID, func(ctx context.Context, env *Envelope) (*Envelope, error) {
		if p.channel == nil {
			return env, ErrNoChannel
		}
		if env.Message == nil {
			msg, err := p.codec.EncodeWithType(ctx, env.Value, env.Properties, env.Type)
			if err != nil {
				return env, err
			}
			env.Message = msg
			env.Properties = msg.Properties
		}
		pub := ToPublishing(env.Message)
		pub.DeliveryMode = p.deliveryMode
		return env, p.channel.PublishWithContext(ctx, p.exchange, p.key, p.mandatory, false, pub)
	})
}

// Publish encodes v and publishes it. props may be nil.
func (p *Publisher) Publish(ctx context.Context, v any, props *missive.MessageProperties) (*missive.Message, error) {
	return p.PublishWithType(ctx, v, props, missive.TypeRef{})
}

// PublishWithType encodes v recording ref in the type headers, and publishes it.
func (p *Publisher) PublishWithType(ctx context.Context, v any, props *missive.MessageProperties, ref missive.TypeRef) (*missive.Message, error) {
	env := &Envelope{
		Value:      v,
		Type:       ref,
		Properties: props,
	}
	out, err := p.pipeline.Process(ctx, env)
	if err != nil {
		return nil, err
	}
	return out.Message, nil
}

// Close releases the pipeline. The channel is owned by the caller.
func (p *Publisher) Close() error {
	return p.pipeline.Close()
}
