package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize     = 32     // Salt size in bytes
	KeySize      = 32     // AES-256 key size
	IVSize       = 16     // AES block / CBC IV size
	DefaultIters = 100000 // PBKDF2 iterations, fixed on both paths
)

// KDF handles key derivation from passwords
type KDF struct {
	Salt       []byte
	Iterations int
}

// NewKDF creates a new KDF with a random salt
func NewKDF() (*KDF, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	return &KDF{
		Salt:       salt,
		Iterations: DefaultIters,
	}, nil
}

// DeriveKey derives an encryption key from a password
func (k *KDF) DeriveKey(password []byte) []byte {
	return pbkdf2.Key(password, k.Salt, k.Iterations, KeySize, sha256.New)
}

// Cipher performs AES-256-CBC encryption with PKCS#7 padding
type Cipher struct {
	key []byte
}

// NewCipher creates a new cipher with the given key
func NewCipher(key []byte) *Cipher {
	return &Cipher{
		key: key,
	}
}

// Encrypt pads plaintext to the block size and encrypts it in CBC mode.
// The IV must be IVSize bytes and unique per encryption.
func (c *Cipher) Encrypt(iv, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	if len(iv) != IVSize {
		return nil, fmt.Errorf("invalid IV length %d", len(iv))
	}

	padded := pad(plaintext)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	ClearBytes(padded)

	return ciphertext, nil
}

// Decrypt decrypts CBC ciphertext and strips the padding.
// Any structural or padding problem is reported as ErrDecryptionFailed
// without further detail, so a wrong password and a corrupted file are
// indistinguishable to the caller.
func (c *Cipher) Decrypt(iv, ciphertext []byte) ([]byte, error) {
	if len(iv) != IVSize {
		return nil, ErrDecryptionFailed
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrDecryptionFailed
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, ok := unpad(plaintext)
	if !ok {
		ClearBytes(plaintext)
		return nil, ErrDecryptionFailed
	}

	return unpadded, nil
}

// Destroy clears the cipher's key from memory
func (c *Cipher) Destroy() {
	ClearBytes(c.key)
}

// pad appends PKCS#7 padding to a full block boundary
func pad(data []byte) []byte {
	n := aes.BlockSize - len(data)%aes.BlockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// unpad validates and strips PKCS#7 padding
func unpad(data []byte) ([]byte, bool) {
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, false
	}
	n := int(data[len(data)-1])
	if n == 0 || n > aes.BlockSize || n > len(data) {
		return nil, false
	}
	// Verify every padding byte without early exit
	bad := 0
	for _, b := range data[len(data)-n:] {
		bad |= int(b) ^ n
	}
	if bad != 0 {
		return nil, false
	}
	return data[:len(data)-n], true
}

// Seal encrypts plaintext with a key derived from password and a fresh
// salt, returning a complete envelope (salt, IV, ciphertext).
func Seal(password, plaintext []byte) ([]byte, error) {
	kdf, err := NewKDF()
	if err != nil {
		return nil, err
	}

	iv, err := GenerateRandom(IVSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate IV: %w", err)
	}

	key := kdf.DeriveKey(password)
	c := NewCipher(key)
	defer c.Destroy()

	ciphertext, err := c.Encrypt(iv, plaintext)
	if err != nil {
		return nil, err
	}

	return EncodeEnvelope(kdf.Salt, iv, ciphertext), nil
}

// Open decodes an envelope and decrypts it with a key derived from
// password and the envelope's stored salt.
func Open(password, envelope []byte) ([]byte, error) {
	salt, iv, ciphertext, err := DecodeEnvelope(envelope)
	if err != nil {
		return nil, err
	}

	kdf := &KDF{
		Salt:       salt,
		Iterations: DefaultIters,
	}

	key := kdf.DeriveKey(password)
	c := NewCipher(key)
	defer c.Destroy()

	return c.Decrypt(iv, ciphertext)
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// GenerateRandom generates n random bytes
func GenerateRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}
