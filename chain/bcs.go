package chain

import (
	"encoding/hex"
	"errors"
	"fmt"

	"creator-engagement-system/common"
)

// ErrMalformedPayload decoder input is empty or shorter than its declared length
var ErrMalformedPayload = errors.New("malformed payload")

// DecodeAddressVector decode a BCS vector<address> payload into canonical
// identifier strings.
//
// The payload layout is a single count byte n followed by n fixed 32-byte
// object IDs. The single-byte length prefix caps the list at 255 entries; that
// boundary comes from the on-chain encoding this must match and is kept as-is.
// Decoding is purely structural: no checksum or namespace validation.
func DecodeAddressVector(payload []byte) ([]string, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedPayload)
	}

	n := int(payload[0])
	if len(payload) < 1+n*common.IdentifierLength {
		return nil, fmt.Errorf("%w: declared %d addresses, need %d bytes, got %d",
			ErrMalformedPayload, n, 1+n*common.IdentifierLength, len(payload))
	}

	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		start := 1 + i*common.IdentifierLength
		chunk := payload[start : start+common.IdentifierLength]
		ids = append(ids, "0x"+hex.EncodeToString(chunk))
	}

	return ids, nil
}

// EncodeAddressVector encode canonical identifiers back into the wire layout
// produced by the registry read calls (count byte + concatenated 32-byte IDs).
func EncodeAddressVector(ids []string) ([]byte, error) {
	if len(ids) > 255 {
		return nil, fmt.Errorf("address vector too long: %d entries, max 255", len(ids))
	}

	payload := make([]byte, 1, 1+len(ids)*common.IdentifierLength)
	payload[0] = byte(len(ids))
	for _, id := range ids {
		raw, err := common.IdentifierBytes(id)
		if err != nil {
			return nil, err
		}
		payload = append(payload, raw...)
	}

	return payload, nil
}
