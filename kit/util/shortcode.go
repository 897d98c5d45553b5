package util

import (
	"crypto/rand"
	"math/big"
)

const (
	shortCodePrefix   = "hse"
	shortCodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	shortCodeRandLen  = 6
)

// GenerateShortCode returns customAlias verbatim when provided; the caller
// owns its uniqueness, which only the store can decide. Otherwise it draws a
// fixed-prefix random code. No collision check happens here: the store's
// uniqueness constraint is the authority, and callers retry on a duplicate.
func GenerateShortCode(customAlias string) string {
	if customAlias != "" {
		return customAlias
	}

	b := make([]byte, shortCodeRandLen)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(shortCodeAlphabet))))
		if err != nil {
			panic(err) // crypto/rand failure is not recoverable
		}
		b[i] = shortCodeAlphabet[num.Int64()]
	}
	return shortCodePrefix + string(b)
}
