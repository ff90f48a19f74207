// Package crypto provides the password-based file encryption core for shed.
//
// Encryption uses AES-256-CBC with PKCS#7 padding:
//   - 32-byte key derived from password via PBKDF2
//   - 16-byte random IV per encryption operation
//   - output envelope is salt || IV || ciphertext, no framing
//
// Key derivation uses PBKDF2-HMAC-SHA256 with:
//   - 32-byte random salt (stored in the envelope)
//   - 100,000 iterations, identical on encrypt and decrypt
//
// The format carries no authentication tag; a wrong password and a
// corrupted file are detected only through padding validation and are
// reported with a single generic error.
//
// Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
//   - Call Cipher.Destroy() when done with encryption operations
package crypto
