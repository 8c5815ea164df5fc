package id

import (
	"encoding/base64"
	"testing"
)

func TestTokenGenerator(t *testing.T) {
	t.Parallel()

	gen := NewTokenGenerator(0)
	seen := make(map[string]struct{}, 32)
	for i := 0; i < 32; i++ {
		token, err := gen.NewID()
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		raw, err := base64.RawURLEncoding.DecodeString(token)
		if err != nil || len(raw) != defaultTokenBytes {
			t.Fatalf("unexpected token %q: len=%d err=%v", token, len(raw), err)
		}
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = struct{}{}
	}

	if got := NewTokenGenerator(32).Size; got != 32 {
		t.Fatalf("unexpected size: %d", got)
	}
}
