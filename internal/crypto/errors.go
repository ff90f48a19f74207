package crypto

import "errors"

var (
	// ErrMalformedEnvelope is returned when an input stream is too
	// short to contain a salt, IV and at least one cipher block.
	ErrMalformedEnvelope = errors.New("malformed envelope: input shorter than minimum encrypted size")

	// ErrDecryptionFailed covers both a wrong password and corrupted
	// ciphertext. The two cases are deliberately not distinguished.
	ErrDecryptionFailed = errors.New("decryption failed: invalid password or corrupted file")
)
