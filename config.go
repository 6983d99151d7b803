package missive

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config contains the settings for a Codec.
type Config struct {
	// ContentType overrides the serializer's content type when set
	ContentType string `yaml:"contentType" json:"contentType"`

	// DefaultCharset is used to encode bodies and to decode bodies with no content encoding
	DefaultCharset string `yaml:"defaultCharset" json:"defaultCharset"`

	// TypePrecedence is "inferred" or "type_id". Empty keeps the codec's
	// precedence, which is "inferred" for a new codec
	TypePrecedence TypePrecedence `yaml:"typePrecedence" json:"typePrecedence"`

	// TrustedPackages lists the namespaces type identifiers may resolve in; "*" trusts all
	TrustedPackages []string `yaml:"trustedPackages" json:"trustedPackages"`

	// AssumeSupportedContentType decodes messages with no content type
	AssumeSupportedContentType bool `yaml:"assumeSupportedContentType" json:"assumeSupportedContentType"`

	// UseProjectionForInterfaces projects interface targets; requires a projector
	UseProjectionForInterfaces bool `yaml:"useProjectionForInterfaces" json:"useProjectionForInterfaces"`

	// CreateMessageIDs stamps a UUID message id on encode
	CreateMessageIDs bool `yaml:"createMessageIds" json:"createMessageIds"`
}

// DefaultConfig returns the default codec configuration
func DefaultConfig() Config {
	return Config{
		DefaultCharset:             DefaultCharset,
		AssumeSupportedContentType: true,
	}
}

// LoadConfig reads a YAML configuration. Keys absent from the document keep
// their default values; unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode codec config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open codec config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// Apply configures c from cfg. TrustedPackages and ContentType are fixed at
// construction and are only honored by NewFromConfig.
func (cfg Config) Apply(c *Codec) error {
	if err := c.SetDefaultCharset(cfg.DefaultCharset); err != nil {
		return err
	}
	if cfg.TypePrecedence != "" {
		if err := c.SetTypePrecedence(cfg.TypePrecedence); err != nil {
			return err
		}
	}
	c.SetAssumeSupportedContentType(cfg.AssumeSupportedContentType)
	if err := c.SetUseProjectionForInterfaces(cfg.UseProjectionForInterfaces); err != nil {
		return err
	}
	c.SetCreateMessageIDs(cfg.CreateMessageIDs)
	return nil
}

// NewFromConfig creates a Codec for s configured by cfg.
// Projection cannot be enabled here since no projector is installed yet;
// use Apply after SetProjector instead.
func NewFromConfig(s Serializer, cfg Config) (*Codec, error) {
	contentType := cfg.ContentType
	if contentType == "" {
		contentType = s.ContentType()
	}
	c, err := NewWithContentType(s, contentType, cfg.TrustedPackages...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(c); err != nil {
		return nil, err
	}
	return c, nil
}
