package pricecache

import (
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf16"
)

// PayloadHash returns a deterministic identity hash for a normalized
// search payload. The payload is serialized with encoding/json (struct
// field order fixes the canonical key order) and hashed with a djb2-xor
// accumulator over its UTF-16 code units. Collisions only cost an extra
// upstream call, so a 32-bit hash is enough.
func PayloadHash(payload any) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error serializing payload: %w", err)
	}
	return hashString(string(b)), nil
}

func hashString(s string) string {
	h := uint32(5381)
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*33 ^ uint32(unit)
	}
	return strconv.FormatUint(uint64(h), 16)
}
