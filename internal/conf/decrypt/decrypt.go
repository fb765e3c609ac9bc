// Package decrypt decrypts pngme configuration files encrypted with secretbox.
package decrypt

import (
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
)

// ErrDecryption is returned when the key does not open the configuration.
var ErrDecryption = errors.New("unable to decrypt configuration")

// Decrypt decrypts a configuration encoded as base64(nonce ++ secretbox(content)).
// Keys shorter than 32 bytes are zero-padded.
func Decrypt(key string, byts []byte) ([]byte, error) {
	enc, err := base64.StdEncoding.DecodeString(string(byts))
	if err != nil {
		return nil, fmt.Errorf("encrypted configuration is not base64: %w", err)
	}

	if len(enc) < nonceSize+secretbox.Overhead {
		return nil, ErrDecryption
	}

	var secretKey [keySize]byte
	copy(secretKey[:], key)

	var nonce [nonceSize]byte
	copy(nonce[:], enc)

	out, ok := secretbox.Open(nil, enc[nonceSize:], &nonce, &secretKey)
	if !ok {
		return nil, ErrDecryption
	}

	return out, nil
}
