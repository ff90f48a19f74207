// Package keyring caches passphrases in the operating system keyring,
// keyed by a user-chosen profile name. Use is strictly opt-in.
package keyring

import (
	"github.com/zalando/go-keyring"
)

const serviceName = "shed"

// SavePassword stores a password in the OS keyring
func SavePassword(profile string, password string) error {
	return keyring.Set(serviceName, profile, password)
}

// GetPassword retrieves a password from the OS keyring
func GetPassword(profile string) (string, error) {
	return keyring.Get(serviceName, profile)
}

// DeletePassword removes a password from the OS keyring
func DeletePassword(profile string) error {
	return keyring.Delete(serviceName, profile)
}

// HasPassword checks if a password is stored in the keyring
func HasPassword(profile string) bool {
	_, err := keyring.Get(serviceName, profile)
	return err == nil
}
