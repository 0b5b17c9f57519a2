package common

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// IdentifierLength raw byte length of an on-chain object ID / wallet address
const IdentifierLength = 32

// SignatureScheme flag byte prepended to the public key before hashing
type SignatureScheme byte

const (
	SchemeEd25519   SignatureScheme = 0x00
	SchemeSecp256k1 SignatureScheme = 0x01
	SchemeSecp256r1 SignatureScheme = 0x02
)

var ErrInvalidIdentifier = errors.New("invalid identifier")

// NormalizeIdentifier canonicalize an identifier to "0x" + 64 lowercase hex characters.
// Accepts identifiers with or without the 0x prefix and with leading zeros stripped.
func NormalizeIdentifier(id string) (string, error) {
	s := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(id)), "0x")
	if s == "" || len(s) > IdentifierLength*2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	if _, err := hex.DecodeString(padLeft(s)); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	return "0x" + padLeft(s), nil
}

// IsValidIdentifier report whether id normalizes to a canonical identifier
func IsValidIdentifier(id string) bool {
	_, err := NormalizeIdentifier(id)
	return err == nil
}

// IdentifierBytes decode a canonical identifier into its 32 raw bytes
func IdentifierBytes(id string) ([]byte, error) {
	canonical, err := NormalizeIdentifier(id)
	if err != nil {
		return nil, err
	}
	return hex.DecodeString(canonical[2:])
}

// IdentifierFromBytes render 32 raw bytes as a canonical identifier
func IdentifierFromBytes(b []byte) (string, error) {
	if len(b) != IdentifierLength {
		return "", fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidIdentifier, IdentifierLength, len(b))
	}
	return "0x" + hex.EncodeToString(b), nil
}

// AddressFromPublicKey derive a wallet address from a public key.
// The address is the blake2b-256 digest of the scheme flag byte followed by the
// raw public key bytes, which matches how the wallet login provider derives the
// identifiers it hands to the ledger.
func AddressFromPublicKey(scheme SignatureScheme, pubKey []byte) (string, error) {
	if len(pubKey) == 0 {
		return "", errors.New("empty public key")
	}
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	h.Write([]byte{byte(scheme)})
	h.Write(pubKey)
	return "0x" + hex.EncodeToString(h.Sum(nil)), nil
}

func padLeft(s string) string {
	if len(s) < IdentifierLength*2 {
		s = strings.Repeat("0", IdentifierLength*2-len(s)) + s
	}
	return s
}
