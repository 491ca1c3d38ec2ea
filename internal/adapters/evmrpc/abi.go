package evmrpc

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// Word extracts the i-th 32-byte word of an ABI-encoded result as a uint256.
// ABI words carry leading zeros, which FromHex rejects, so they are decoded
// through SetBytes instead.
func Word(result string, i int) (*uint256.Int, error) {
	raw, err := resultBytes(result)
	if err != nil {
		return nil, err
	}
	if len(raw) < (i+1)*32 {
		return nil, fmt.Errorf("result too short: want word %d of %d bytes", i, len(raw))
	}
	return new(uint256.Int).SetBytes(raw[i*32 : (i+1)*32]), nil
}

// SignedWord extracts the i-th word as an int256 magnitude plus sign. The
// engine only needs the sign to reject negative feed answers.
func SignedWord(result string, i int) (*uint256.Int, bool, error) {
	raw, err := resultBytes(result)
	if err != nil {
		return nil, false, err
	}
	if len(raw) < (i+1)*32 {
		return nil, false, fmt.Errorf("result too short: want word %d of %d bytes", i, len(raw))
	}
	word := raw[i*32 : (i+1)*32]
	negative := word[0]&0x80 != 0
	return new(uint256.Int).SetBytes(word), negative, nil
}

// DecodeString decodes a single ABI-encoded string return value
// (offset word, length word, then the bytes).
func DecodeString(result string) (string, error) {
	raw, err := resultBytes(result)
	if err != nil {
		return "", err
	}
	if len(raw) < 64 {
		return "", fmt.Errorf("result too short for a string: %d bytes", len(raw))
	}
	offset := new(uint256.Int).SetBytes(raw[0:32])
	if !offset.IsUint64() || offset.Uint64()+32 > uint64(len(raw)) {
		return "", fmt.Errorf("string offset out of range")
	}
	start := offset.Uint64()
	length := new(uint256.Int).SetBytes(raw[start : start+32])
	if !length.IsUint64() || start+32+length.Uint64() > uint64(len(raw)) {
		return "", fmt.Errorf("string length out of range")
	}
	return string(raw[start+32 : start+32+length.Uint64()]), nil
}

func resultBytes(result string) ([]byte, error) {
	trimmed := strings.TrimPrefix(result, "0x")
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid hex result: %w", err)
	}
	return raw, nil
}
