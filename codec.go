package missive

import (
	"mime"
	"reflect"
	"strings"

	"github.com/zoobzio/capitan"
	"go.uber.org/zap"
)

// Codec converts message bodies to and from Go values using a Serializer.
//
// A Codec is configured once, then used concurrently. Encode and Decode keep
// no per-message state on the Codec and are safe to call from many goroutines.
// The Set* methods are not synchronized: call them during setup, before the
// Codec is shared. Changing configuration while messages are in flight is
// the caller's responsibility.
type Codec struct {
	serializer  Serializer
	contentType string
	subtype     string
	charset     charset
	trust       TrustList

	typeMapper       TypeMapper
	customTypeMapper bool
	classMapper      ClassMapper
	resolution       resolution

	projector     Projector
	useProjection bool

	assumeSupportedContentType bool
	createMessageIDs           bool

	logger  *zap.Logger
	signals emitter
}

// New creates a Codec for s advertising s.ContentType().
// Type identifiers resolve only within the trusted namespaces.
func New(s Serializer, trusted ...string) (*Codec, error) {
	return NewWithContentType(s, s.ContentType(), trusted...)
}

// NewWithContentType creates a Codec advertising contentType, for example a
// vendor type such as "application/vnd.acme+json". Decode accepts messages
// whose content type contains its subtype.
func NewWithContentType(s Serializer, contentType string, trusted ...string) (*Codec, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, newConfigError(ErrInvalidContentType, "content_type", contentType)
	}
	slash := strings.Index(mediaType, "/")
	if slash < 0 || slash == len(mediaType)-1 {
		return nil, newConfigError(ErrInvalidContentType, "content_type", contentType)
	}

	trust := NewTrustList(trusted...)
	c := &Codec{
		serializer:                 s,
		contentType:                mime.FormatMediaType(mediaType, params),
		subtype:                    mediaType[slash+1:],
		charset:                    utf8Charset,
		trust:                      trust,
		assumeSupportedContentType: true,
		logger:                     zap.NewNop(),
	}
	c.SetTypeMapper(nil)
	return c, nil
}

// ContentType returns the content type stamped on encoded messages.
func (c *Codec) ContentType() string {
	return c.contentType
}

// Subtype returns the content subtype Decode looks for (e.g. "json").
func (c *Codec) Subtype() string {
	return c.subtype
}

// Serializer returns the underlying serializer.
func (c *Codec) Serializer() Serializer {
	return c.serializer
}

// TrustList returns the trusted namespaces given at construction.
func (c *Codec) TrustList() TrustList {
	return c.trust
}

// DefaultCharset returns the canonical name of the configured charset.
func (c *Codec) DefaultCharset() string {
	return c.charset.name
}

// SetDefaultCharset sets the charset used to encode bodies, and to decode
// bodies whose message carries no content encoding. An empty name restores UTF-8.
func (c *Codec) SetDefaultCharset(name string) error {
	if name == "" {
		c.charset = utf8Charset
		return nil
	}
	cs, err := lookupCharset(name)
	if err != nil {
		return newConfigError(ErrUnknownCharset, "default_charset", name)
	}
	c.charset = cs
	return nil
}

// TypeMapper returns the type mapper in use.
func (c *Codec) TypeMapper() TypeMapper {
	return c.typeMapper
}

// SetTypeMapper installs a custom type mapper. Passing nil restores a
// DefaultTypeMapper built from the codec's trust list.
func (c *Codec) SetTypeMapper(m TypeMapper) *Codec {
	if m == nil {
		c.typeMapper = NewDefaultTypeMapper(c.trust)
		c.customTypeMapper = false
	} else {
		c.typeMapper = m
		c.customTypeMapper = true
	}
	if c.classMapper == nil {
		c.resolution = typeMapperResolution{mapper: c.typeMapper}
	}
	return c
}

// TypePrecedence returns the precedence of the default type mapper, or the
// empty string when a custom mapper is installed.
func (c *Codec) TypePrecedence() TypePrecedence {
	if dm, ok := c.typeMapper.(*DefaultTypeMapper); ok && !c.customTypeMapper {
		return dm.TypePrecedence()
	}
	return ""
}

// SetTypePrecedence sets the precedence on the default type mapper.
// It fails when a custom type mapper is installed; set precedence on that
// mapper directly.
func (c *Codec) SetTypePrecedence(p TypePrecedence) error {
	if c.customTypeMapper {
		return newConfigError(ErrCustomTypeMapper, "type_precedence", string(p))
	}
	dm, ok := c.typeMapper.(*DefaultTypeMapper)
	if !ok {
		return newConfigError(ErrPrecedenceUnsupported, "type_precedence", string(p))
	}
	return dm.SetTypePrecedence(p)
}

// ClassMapper returns the class mapper override, or nil.
func (c *Codec) ClassMapper() ClassMapper {
	return c.classMapper
}

// SetClassMapper overrides type resolution with m. Passing nil returns
// resolution to the type mapper.
func (c *Codec) SetClassMapper(m ClassMapper) *Codec {
	c.classMapper = m
	if m == nil {
		c.resolution = typeMapperResolution{mapper: c.typeMapper}
	} else {
		c.resolution = classMapperResolution{mapper: m}
	}
	return c
}

// AssumeSupportedContentType reports whether messages without a content type
// are decoded.
func (c *Codec) AssumeSupportedContentType() bool {
	return c.assumeSupportedContentType
}

// SetAssumeSupportedContentType controls whether messages with no content
// type, or the default octet-stream type, are decoded. Defaults to true.
func (c *Codec) SetAssumeSupportedContentType(assume bool) *Codec {
	c.assumeSupportedContentType = assume
	return c
}

// SetProjector installs the projector used for interface targets.
func (c *Codec) SetProjector(p Projector) *Codec {
	c.projector = p
	if p == nil {
		c.useProjection = false
	}
	return c
}

// SetUseProjectionForInterfaces enables projection when the inferred type is
// an interface. A projector must be installed first.
func (c *Codec) SetUseProjectionForInterfaces(enabled bool) error {
	if enabled && c.projector == nil {
		return newConfigError(ErrMissingProjector, "use_projection_for_interfaces", "true")
	}
	c.useProjection = enabled
	return nil
}

// SetCreateMessageIDs controls whether Encode stamps a UUID message id on
// properties that have none.
func (c *Codec) SetCreateMessageIDs(enabled bool) *Codec {
	c.createMessageIDs = enabled
	return c
}

// SetLogger sets the logger used for diagnostics. Nil disables logging.
func (c *Codec) SetLogger(l *zap.Logger) *Codec {
	if l == nil {
		l = zap.NewNop()
	}
	c.logger = l
	return c
}

// SetCapitan routes codec events to a specific Capitan instance instead of
// the package default.
func (c *Codec) SetCapitan(cp *capitan.Capitan) *Codec {
	c.signals = emitter{capitan: cp}
	return c
}

// resolution is the configured type resolution strategy: either the type
// mapper or a class mapper override. Exactly one is active.
type resolution interface {
	targetType(props *MessageProperties) (reflect.Type, error)
	writeType(runtime, hint reflect.Type, props *MessageProperties)
	// lenient reports whether a *ConversionError from targetType degrades
	// to returning the body as text.
	lenient() bool
}

type typeMapperResolution struct {
	mapper TypeMapper
}

func (r typeMapperResolution) targetType(props *MessageProperties) (reflect.Type, error) {
	return r.mapper.ToType(props)
}

// writeType records the hint, unless it is a non-container interface that
// could never be instantiated on decode.
func (r typeMapperResolution) writeType(runtime, hint reflect.Type, props *MessageProperties) {
	t := runtime
	if hint != nil {
		t = hint
		if !isContainer(hint) && isAbstract(hint) && runtime != nil {
			t = runtime
		}
	}
	if t == nil {
		return
	}
	r.mapper.FromType(t, props)
}

func (typeMapperResolution) lenient() bool { return false }

type classMapperResolution struct {
	mapper ClassMapper
}

func (r classMapperResolution) targetType(props *MessageProperties) (reflect.Type, error) {
	return r.mapper.ToType(props)
}

func (r classMapperResolution) writeType(runtime, _ reflect.Type, props *MessageProperties) {
	if runtime == nil {
		return
	}
	r.mapper.FromType(runtime, props)
}

func (classMapperResolution) lenient() bool { return true }
