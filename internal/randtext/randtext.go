// Package randtext generates random strings from configurable
// character classes using the system's cryptographic randomness.
package randtext

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	Lower   = "abcdefghijklmnopqrstuvwxyz"
	Upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits  = "0123456789"
	Symbols = "!@#$%^&*()-_=+[]{};:,.<>?"
)

// ErrAllCharactersExcluded is returned when the exclusion set leaves
// no characters to choose from.
var ErrAllCharactersExcluded = errors.New("all candidate characters are excluded")

// Options selects the character classes and an exclusion set.
// The zero value enables every class and excludes nothing.
type Options struct {
	NoLower   bool
	NoUpper   bool
	NoDigits  bool
	NoSymbols bool
	Exclude   string // individual characters to drop from the charset
}

// Charset assembles the effective character set for the options.
func (o Options) Charset() (string, error) {
	var b strings.Builder
	if !o.NoLower {
		b.WriteString(Lower)
	}
	if !o.NoUpper {
		b.WriteString(Upper)
	}
	if !o.NoDigits {
		b.WriteString(Digits)
	}
	if !o.NoSymbols {
		b.WriteString(Symbols)
	}

	charset := b.String()
	if o.Exclude != "" {
		var kept strings.Builder
		for _, c := range charset {
			if !strings.ContainsRune(o.Exclude, c) {
				kept.WriteRune(c)
			}
		}
		charset = kept.String()
	}

	if charset == "" {
		return "", ErrAllCharactersExcluded
	}
	return charset, nil
}

// Generate returns a random string of length n drawn uniformly from
// the charset the options describe.
func Generate(n int, opts Options) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("length must be non-negative, got %d", n)
	}

	charset, err := opts.Charset()
	if err != nil {
		return "", err
	}

	max := big.NewInt(int64(len(charset)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random index: %w", err)
		}
		out[i] = charset[idx.Int64()]
	}

	return string(out), nil
}
