// Package covers decodes stored cover payloads and downloads remote cover images.
//
// A stored cover is either a data URI ("data:image/png;base64,...") or bare
// base64, which is assumed to be a JPEG.
package covers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultMIME is used when the stored payload carries no media type.
const DefaultMIME = "image/jpeg"

var (
	ErrEmptyPayload = errors.New("cover payload is empty")

	dataURIPattern = regexp.MustCompile(`(?is)^data:(.+?);base64,(.*)$`)
)

// Payload is a decoded cover image.
type Payload struct {
	MIME string
	Data []byte
}

// Decode parses a stored cover string into bytes and a media type.
func Decode(stored string) (*Payload, error) {
	if stored == "" {
		return nil, ErrEmptyPayload
	}

	mime := DefaultMIME
	encoded := stored
	if m := dataURIPattern.FindStringSubmatch(stored); m != nil {
		mime = strings.TrimSpace(m[1])
		encoded = m[2]
	}

	data, err := decodeBase64(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode cover: %w", err)
	}
	return &Payload{MIME: mime, Data: data}, nil
}

// EncodeDataURI builds the data URI form used for storage.
func EncodeDataURI(mime string, data []byte) string {
	if mime == "" {
		mime = DefaultMIME
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// decodeBase64 accepts padded and unpadded standard encodings and ignores
// embedded line breaks.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)

	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}
