package common

import (
	"encoding/hex"
	"testing"
)

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	n := 16
	s, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("MakeRandHexString error: %v", err)
	}
	if len(s) != 2*n {
		t.Fatalf("unexpected length: got %d want %d", len(s), 2*n)
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("result is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_Entropy(t *testing.T) {
	a, err := MakeRandHexString(16)
	if err != nil {
		t.Fatalf("MakeRandHexString error: %v", err)
	}
	b, err := MakeRandHexString(16)
	if err != nil {
		t.Fatalf("MakeRandHexString error: %v", err)
	}
	if a == b {
		t.Logf("warning: two random strings identical; extremely unlikely")
	}
}

func TestGenerateRandByteArray(t *testing.T) {
	b, err := GenerateRandByteArray(32)
	if err != nil {
		t.Fatalf("GenerateRandByteArray error: %v", err)
	}
	if len(b) != 32 {
		t.Fatalf("unexpected length: %d", len(b))
	}
}

func TestWipeByteArray(t *testing.T) {
	b := []byte{1, 2, 3}
	WipeByteArray(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not wiped: %d", i, v)
		}
	}
	WipeByteArray(nil) // must not panic
}
