package decoder

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"birmerge/internal/document"
	"birmerge/internal/domain"
)

// EnvelopeDecoder extracts the base64 document value from an exchange envelope
// and decodes it to XML text. It implements port.Decoder.
type EnvelopeDecoder struct{}

// NewEnvelopeDecoder creates a new EnvelopeDecoder.
func NewEnvelopeDecoder() *EnvelopeDecoder {
	return &EnvelopeDecoder{}
}

// Decode reads response.documents[0].value from the envelope and returns the
// decoded bytes. Only the first document is consulted.
func (d *EnvelopeDecoder) Decode(ctx context.Context, envelope []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree, err := document.Decode(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}

	value, err := documentValue(tree)
	if err != nil {
		return nil, err
	}

	decoded, err := DecodeBase64(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}
	if !utf8.Valid(decoded) {
		return nil, fmt.Errorf("%w: decoded document is not valid UTF-8", domain.ErrDecode)
	}
	return decoded, nil
}

func documentValue(tree document.Tree) (string, error) {
	docs, ok := document.Array(tree, domain.EnvelopeResponseKey, domain.EnvelopeDocumentsKey)
	if !ok {
		return "", fmt.Errorf("%w: missing response.documents", domain.ErrDecode)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("%w: response.documents is empty", domain.ErrDecode)
	}

	raw, ok := document.Lookup(docs[0], domain.EnvelopeValueKey)
	if !ok {
		return "", fmt.Errorf("%w: missing response.documents[0].value", domain.ErrDecode)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: response.documents[0].value is %T, want string", domain.ErrDecode, raw)
	}
	return value, nil
}

// DecodeBase64 decodes standard or URL-safe base64 with or without padding.
// Whitespace is ignored.
func DecodeBase64(value string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '=':
			return -1
		case '+':
			return '-'
		case '/':
			return '_'
		}
		return r
	}, value)

	out, err := base64.RawURLEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("decoding base64: %w", err)
	}
	return out, nil
}
