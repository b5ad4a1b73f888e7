package common

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

const alphanumeric = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// MakeRandHexString returns size random bytes from crypto/rand, hex encoded.
// The result is twice as long as size.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// RandomAlphanumeric returns a random string of the given length drawn from
// [0-9A-Za-z], used for human-typable meeting codes.
func RandomAlphanumeric(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(alphanumeric)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphanumeric[n.Int64()]
	}
	return string(out), nil
}
