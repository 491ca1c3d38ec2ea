package evmrpc

import (
	"strings"
	"testing"
)

func padHex(v string) string {
	return strings.Repeat("0", 64-len(v)) + v
}

func TestWord(t *testing.T) {
	// Two words: 0x64 (100) and 0x2540be400 (10_000_000_000).
	result := "0x" + padHex("64") + padHex("2540be400")

	w0, err := Word(result, 0)
	if err != nil {
		t.Fatalf("word 0: %v", err)
	}
	if w0.Uint64() != 100 {
		t.Errorf("word 0 = %v, want 100", w0)
	}
	w1, err := Word(result, 1)
	if err != nil {
		t.Fatalf("word 1: %v", err)
	}
	if w1.Uint64() != 10_000_000_000 {
		t.Errorf("word 1 = %v, want 10000000000", w1)
	}
	if _, err := Word(result, 2); err == nil {
		t.Error("expected error for out-of-range word")
	}
}

func TestSignedWordNegative(t *testing.T) {
	negative := "0x" + strings.Repeat("f", 64)
	_, neg, err := SignedWord(negative, 0)
	if err != nil {
		t.Fatalf("SignedWord: %v", err)
	}
	if !neg {
		t.Error("all-ones word should report negative")
	}

	positive := "0x" + padHex("7b")
	v, neg, err := SignedWord(positive, 0)
	if err != nil {
		t.Fatalf("SignedWord: %v", err)
	}
	if neg || v.Uint64() != 123 {
		t.Errorf("got (%v, neg=%v), want (123, false)", v, neg)
	}
}

func TestDecodeString(t *testing.T) {
	// ABI encoding of "Router 1.2.0": offset 0x20, length 12, padded bytes.
	payload := "526f7574657220312e322e30" // hex of "Router 1.2.0"
	result := "0x" + padHex("20") + padHex("c") + payload + strings.Repeat("0", 64-len(payload))

	s, err := DecodeString(result)
	if err != nil {
		t.Fatalf("DecodeString: %v", err)
	}
	if s != "Router 1.2.0" {
		t.Errorf("decoded %q, want %q", s, "Router 1.2.0")
	}
}

func TestDecodeStringRejectsTruncated(t *testing.T) {
	if _, err := DecodeString("0x" + padHex("20")); err == nil {
		t.Error("expected error for truncated string result")
	}
	if _, err := DecodeString("0xzz"); err == nil {
		t.Error("expected error for invalid hex")
	}
}

func TestPadAddress(t *testing.T) {
	got := PadAddress("0x75faf114eafb1BDbe2F0316DF893fd58CE46AA4d")
	want := "00000000000000000000000075faf114eafb1bdbe2f0316df893fd58ce46aa4d"
	if got != want {
		t.Errorf("PadAddress = %s, want %s", got, want)
	}
	if len(got) != 64 {
		t.Errorf("padded length = %d, want 64", len(got))
	}
}

func TestPadAddressOverlongInput(t *testing.T) {
	// A malformed catalog token address must not panic; the low-order 32
	// bytes survive, like EVM address coercion.
	long := "0x" + strings.Repeat("ab", 40)
	got := PadAddress(long)
	if len(got) != 64 {
		t.Fatalf("padded length = %d, want 64", len(got))
	}
	if got != strings.Repeat("ab", 32) {
		t.Errorf("PadAddress = %s, want the trailing 64 hex chars", got)
	}

	exact := strings.Repeat("c", 64)
	if got := PadAddress(exact); got != exact {
		t.Errorf("PadAddress(64 chars) = %s, want unchanged", got)
	}
}
