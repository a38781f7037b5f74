package covers

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		wantMIME string
		wantData string
	}{
		{"data uri png", "data:image/png;base64,QUJD", "image/png", "ABC"},
		{"uppercase prefix", "DATA:image/webp;BASE64,QUJD", "image/webp", "ABC"},
		{"bare base64", "QUJD", "image/jpeg", "ABC"},
		{"unpadded", "QUI", "image/jpeg", "AB"},
		{"line breaks", "data:image/gif;base64,QU\nJD", "image/gif", "ABC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decode(tt.stored)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if p.MIME != tt.wantMIME {
				t.Errorf("expected MIME %q, got %q", tt.wantMIME, p.MIME)
			}
			if string(p.Data) != tt.wantData {
				t.Errorf("expected data %q, got %q", tt.wantData, p.Data)
			}
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	if _, err := Decode(""); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("expected ErrEmptyPayload, got %v", err)
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode("data:image/png;base64,!!!not base64!!!"); err == nil {
		t.Error("expected error for undecodable payload")
	}
}

func TestEncodeDataURI_RoundTrip(t *testing.T) {
	data := []byte{0xff, 0xd8, 0xff, 0x00, 0x10}
	uri := EncodeDataURI("", data)

	p, err := Decode(uri)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if p.MIME != DefaultMIME {
		t.Errorf("expected %s, got %s", DefaultMIME, p.MIME)
	}
	if !bytes.Equal(p.Data, data) {
		t.Errorf("round trip changed data: %v", p.Data)
	}
}
