package coding

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DecodeHex decodes a hex string, tolerating surrounding whitespace and a 0x prefix.
func DecodeHex(in string) ([]byte, error) {
	normalized := strings.TrimSpace(in)
	if strings.HasPrefix(normalized, "0x") || strings.HasPrefix(normalized, "0X") {
		normalized = normalized[2:]
	}

	return hex.DecodeString(normalized)
}

// PayloadFingerprint pretty prints a hex payload in an identifiable and succint way.
func PayloadFingerprint(payload []byte) string {
	if len(payload) <= 8 {
		return NormalizeMaybeEmptyBytes(payload)
	}

	return fmt.Sprintf("[%s...%s]", hex.EncodeToString(payload[0:4]), hex.EncodeToString(payload[len(payload)-4:]))
}

// Returns an empty byte slice rather than no output for empty byte arrays
func NormalizeMaybeEmptyBytes(bytes []byte) string {
	if len(bytes) > 0 {
		return hex.EncodeToString(bytes)
	}
	return "[]"
}
