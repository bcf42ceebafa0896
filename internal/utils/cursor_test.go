package utils

import (
	"testing"
	"time"
)

func TestRegistrationCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, 1, 20, 17, 0, 0, 0, time.UTC)

	enc, err := EncodeRegistrationCursor(at, "reg-1")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeRegistrationCursor(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !got.CreatedAt.Equal(at) || got.ID != "reg-1" {
		t.Errorf("got %+v", got)
	}
}

func TestDecodeRegistrationCursorRejectsGarbage(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
	}{
		{"empty", ""},
		{"not base64", "%%%"},
		{"not json", "bm90LWpzb24"},
		{"missing fields", "e30"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeRegistrationCursor(tc.cursor); err == nil {
				t.Error("want error")
			}
		})
	}
}
