package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultCodePrefix is prepended to generated invite codes unless the caller
// supplies its own prefix.
const DefaultCodePrefix = "NA"

// codeSuffixLength is the number of random characters after the prefix.
const codeSuffixLength = 5

const codeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateInviteCode builds an invite code from the given prefix followed by
// 5 characters drawn uniformly from A-Z0-9. Codes are not guaranteed unique;
// callers rely on the database unique constraint for that.
func GenerateInviteCode(prefix string) (string, error) {
	if prefix == "" {
		prefix = DefaultCodePrefix
	}
	suffix, err := GenerateRandomString(codeSuffixLength)
	if err != nil {
		return "", err
	}
	return prefix + suffix, nil
}

// GenerateRandomString generates a random string of the given length from the
// uppercase alphanumeric alphabet.
func GenerateRandomString(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be a positive integer")
	}
	b := make([]byte, length)
	max := big.NewInt(int64(len(codeChars)))
	for i := range b {
		val, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for string: %w", err)
		}
		b[i] = codeChars[val.Int64()]
	}
	return string(b), nil
}
