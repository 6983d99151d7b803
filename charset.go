package missive

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultCharset is the charset a Codec uses until SetDefaultCharset is called.
const DefaultCharset = "UTF-8"

// charset pairs a canonical name with its encoding. UTF-8 needs no transcoding.
type charset struct {
	name string
	enc  encoding.Encoding
	utf8 bool
}

var utf8Charset = charset{name: DefaultCharset, enc: unicode.UTF8, utf8: true}

// lookupCharset resolves an IANA charset name or alias.
func lookupCharset(name string) (charset, error) {
	n := strings.TrimSpace(name)
	if strings.EqualFold(n, "utf-8") || strings.EqualFold(n, "utf8") {
		return utf8Charset, nil
	}
	enc, err := ianaindex.IANA.Encoding(n)
	if err != nil || enc == nil {
		return charset{}, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
	if enc == unicode.UTF8 {
		return utf8Charset, nil
	}
	canonical, err := ianaindex.MIME.Name(enc)
	if err != nil {
		if canonical, err = ianaindex.IANA.Name(enc); err != nil {
			canonical = n
		}
	}
	return charset{name: canonical, enc: enc}, nil
}

// toUTF8 transcodes data from the charset into UTF-8.
func (cs charset) toUTF8(data []byte) ([]byte, error) {
	if cs.utf8 {
		return data, nil
	}
	return cs.enc.NewDecoder().Bytes(data)
}

// fromUTF8 transcodes UTF-8 data into the charset.
func (cs charset) fromUTF8(data []byte) ([]byte, error) {
	if cs.utf8 {
		return data, nil
	}
	return cs.enc.NewEncoder().Bytes(data)
}
