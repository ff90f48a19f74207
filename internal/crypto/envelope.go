package crypto

// On-disk envelope layout, one per encrypted file:
//
//	offset 0..31   salt (32 raw bytes)
//	offset 32..47  IV (16 raw bytes)
//	offset 48..EOF ciphertext (CBC, PKCS#7 padded)
//
// There are no length prefixes: salt and IV are fixed size, the
// ciphertext is the rest of the stream. The minimum valid envelope is
// salt + IV + one padded block = 64 bytes.

// MinEnvelopeSize is the smallest well-formed envelope: salt, IV and a
// single padded cipher block.
const MinEnvelopeSize = SaltSize + IVSize + 16

// EncodeEnvelope concatenates salt, IV and ciphertext into a single
// byte stream in fixed order.
func EncodeEnvelope(salt, iv, ciphertext []byte) []byte {
	env := make([]byte, 0, len(salt)+len(iv)+len(ciphertext))
	env = append(env, salt...)
	env = append(env, iv...)
	env = append(env, ciphertext...)
	return env
}

// DecodeEnvelope splits a byte stream back into salt, IV and
// ciphertext. Streams shorter than MinEnvelopeSize are rejected with
// ErrMalformedEnvelope before any cryptographic work is attempted.
func DecodeEnvelope(env []byte) (salt, iv, ciphertext []byte, err error) {
	if len(env) < MinEnvelopeSize {
		return nil, nil, nil, ErrMalformedEnvelope
	}
	salt = env[:SaltSize]
	iv = env[SaltSize : SaltSize+IVSize]
	ciphertext = env[SaltSize+IVSize:]
	return salt, iv, ciphertext, nil
}
