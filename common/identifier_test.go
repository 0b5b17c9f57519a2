package common

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNormalizeIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  string
		wantErr bool
	}{
		{
			name:   "full canonical form",
			input:  "0x" + strings.Repeat("ab", 32),
			output: "0x" + strings.Repeat("ab", 32),
		},
		{
			name:   "uppercase folded",
			input:  "0x" + strings.Repeat("AB", 32),
			output: "0x" + strings.Repeat("ab", 32),
		},
		{
			name:   "short form zero padded",
			input:  "0xaa",
			output: "0x" + strings.Repeat("0", 62) + "aa",
		},
		{
			name:   "missing prefix accepted",
			input:  "c1",
			output: "0x" + strings.Repeat("0", 62) + "c1",
		},
		{
			name:   "surrounding whitespace trimmed",
			input:  "  0xaa  ",
			output: "0x" + strings.Repeat("0", 62) + "aa",
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "bare prefix",
			input:   "0x",
			wantErr: true,
		},
		{
			name:    "non hex",
			input:   "0xzz",
			wantErr: true,
		},
		{
			name:    "too long",
			input:   "0x" + strings.Repeat("ab", 33),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeIdentifier(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %s", got)
				}
				if !errors.Is(err, ErrInvalidIdentifier) {
					t.Errorf("Expected ErrInvalidIdentifier, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			if got != tt.output {
				t.Errorf("Expected %s, got %s", tt.output, got)
			}
		})
	}
}

func TestIdentifierBytesRoundTrip(t *testing.T) {
	id := "0x" + strings.Repeat("0102030405060708", 4)

	raw, err := IdentifierBytes(id)
	if err != nil {
		t.Fatalf("IdentifierBytes failed: %v", err)
	}
	if len(raw) != IdentifierLength {
		t.Fatalf("Expected %d bytes, got %d", IdentifierLength, len(raw))
	}

	back, err := IdentifierFromBytes(raw)
	if err != nil {
		t.Fatalf("IdentifierFromBytes failed: %v", err)
	}
	if back != id {
		t.Errorf("Expected %s, got %s", id, back)
	}
}

func TestIdentifierFromBytesWrongLength(t *testing.T) {
	if _, err := IdentifierFromBytes(bytes.Repeat([]byte{1}, 31)); err == nil {
		t.Error("Expected error for 31 bytes")
	}
	if _, err := IdentifierFromBytes(bytes.Repeat([]byte{1}, 33)); err == nil {
		t.Error("Expected error for 33 bytes")
	}
}

func TestAddressFromPublicKey(t *testing.T) {
	pubKey := bytes.Repeat([]byte{0x42}, 32)

	addr, err := AddressFromPublicKey(SchemeEd25519, pubKey)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if !IsValidIdentifier(addr) {
		t.Errorf("Derived address is not a valid identifier: %s", addr)
	}

	// Deterministic for the same input
	again, err := AddressFromPublicKey(SchemeEd25519, pubKey)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if addr != again {
		t.Errorf("Derivation not deterministic: %s vs %s", addr, again)
	}

	// Scheme flag participates in the digest
	other, err := AddressFromPublicKey(SchemeSecp256k1, pubKey)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if addr == other {
		t.Error("Different schemes produced the same address")
	}

	if _, err := AddressFromPublicKey(SchemeEd25519, nil); err == nil {
		t.Error("Expected error for empty public key")
	}
}
