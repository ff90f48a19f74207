package crypto

import (
	"bytes"
	"testing"
)

func TestSealOpenRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte("hello12345"),
		[]byte(""),
		[]byte("a"),
		bytes.Repeat([]byte{0xAB}, 16),   // exactly one block
		bytes.Repeat([]byte{0x00}, 1000), // multiple blocks of zeros
	}

	password := []byte("correct")
	for _, plaintext := range cases {
		env, err := Seal(password, plaintext)
		if err != nil {
			t.Fatalf("Seal failed: %v", err)
		}
		if len(env) < MinEnvelopeSize {
			t.Errorf("envelope too short: %d bytes", len(env))
		}

		got, err := Open(password, env)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(plaintext))
		}
	}
}

func TestSealNonDeterministic(t *testing.T) {
	password := []byte("secret")
	plaintext := []byte("same content")

	env1, err := Seal(password, plaintext)
	if err != nil {
		t.Fatalf("first Seal failed: %v", err)
	}
	env2, err := Seal(password, plaintext)
	if err != nil {
		t.Fatalf("second Seal failed: %v", err)
	}

	if bytes.Equal(env1, env2) {
		t.Error("two encryptions of the same plaintext produced identical envelopes")
	}

	// Both still decrypt to the same plaintext
	for i, env := range [][]byte{env1, env2} {
		got, err := Open(password, env)
		if err != nil {
			t.Fatalf("Open of envelope %d failed: %v", i, err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Errorf("envelope %d decrypted to wrong plaintext", i)
		}
	}
}

func TestEmptyPlaintextEnvelopeSize(t *testing.T) {
	env, err := Seal([]byte("pw"), nil)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	// Empty plaintext pads to a single block: salt + IV + 16
	if len(env) != MinEnvelopeSize {
		t.Errorf("empty plaintext envelope is %d bytes, want %d", len(env), MinEnvelopeSize)
	}
}

func TestOpenWrongPassword(t *testing.T) {
	env, err := Seal([]byte("correct"), []byte("hello12345"))
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	if _, err := Open([]byte("wrong"), env); err != ErrDecryptionFailed {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestOpenCorruptedCiphertext(t *testing.T) {
	password := []byte("pw")
	env, err := Seal(password, bytes.Repeat([]byte("x"), 100))
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	// Flip a bit in the last ciphertext block to break the padding
	corrupted := append([]byte(nil), env...)
	corrupted[len(corrupted)-1] ^= 0x01

	if _, err := Open(password, corrupted); err != ErrDecryptionFailed {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestDecodeEnvelopeTruncated(t *testing.T) {
	for _, n := range []int{0, 1, 32, 47, 48, 63} {
		garbage := bytes.Repeat([]byte{0x42}, n)
		if _, _, _, err := DecodeEnvelope(garbage); err != ErrMalformedEnvelope {
			t.Errorf("len %d: expected ErrMalformedEnvelope, got %v", n, err)
		}
	}
}

func TestDecodeEnvelopeFields(t *testing.T) {
	salt := bytes.Repeat([]byte{0x01}, SaltSize)
	iv := bytes.Repeat([]byte{0x02}, IVSize)
	ct := bytes.Repeat([]byte{0x03}, 32)

	env := EncodeEnvelope(salt, iv, ct)
	gotSalt, gotIV, gotCT, err := DecodeEnvelope(env)
	if err != nil {
		t.Fatalf("DecodeEnvelope failed: %v", err)
	}
	if !bytes.Equal(gotSalt, salt) || !bytes.Equal(gotIV, iv) || !bytes.Equal(gotCT, ct) {
		t.Error("decoded fields do not match encoded input")
	}
}

func TestDeriveKeyDeterministic(t *testing.T) {
	kdf, err := NewKDF()
	if err != nil {
		t.Fatalf("NewKDF failed: %v", err)
	}
	if kdf.Iterations != DefaultIters {
		t.Errorf("iterations = %d, want %d", kdf.Iterations, DefaultIters)
	}

	k1 := kdf.DeriveKey([]byte("pass"))
	k2 := kdf.DeriveKey([]byte("pass"))
	if !bytes.Equal(k1, k2) {
		t.Error("same password and salt derived different keys")
	}
	if len(k1) != KeySize {
		t.Errorf("key size = %d, want %d", len(k1), KeySize)
	}

	other, err := NewKDF()
	if err != nil {
		t.Fatalf("NewKDF failed: %v", err)
	}
	if bytes.Equal(kdf.Salt, other.Salt) {
		t.Error("two KDFs generated the same salt")
	}
	if bytes.Equal(k1, other.DeriveKey([]byte("pass"))) {
		t.Error("different salts derived the same key")
	}
}

func TestPadUnpad(t *testing.T) {
	for n := 0; n <= 33; n++ {
		data := bytes.Repeat([]byte{0x7F}, n)
		padded := pad(data)
		if len(padded)%16 != 0 || len(padded) <= len(data) {
			t.Fatalf("len %d: bad padded length %d", n, len(padded))
		}
		got, ok := unpad(padded)
		if !ok {
			t.Fatalf("len %d: unpad rejected valid padding", n)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("len %d: unpad returned wrong data", n)
		}
	}
}

func TestUnpadInvalid(t *testing.T) {
	cases := map[string][]byte{
		"empty":            {},
		"not block sized":  bytes.Repeat([]byte{0x01}, 15),
		"zero pad byte":    append(bytes.Repeat([]byte{0x01}, 15), 0x00),
		"pad byte too big": append(bytes.Repeat([]byte{0x01}, 15), 0x11),
		"inconsistent pad": {1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 2, 3},
	}
	for name, data := range cases {
		if _, ok := unpad(data); ok {
			t.Errorf("%s: unpad accepted invalid padding", name)
		}
	}
}

func TestClearBytes(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	ClearBytes(b)
	for i, v := range b {
		if v != 0 {
			t.Errorf("byte %d not cleared: %d", i, v)
		}
	}
}
