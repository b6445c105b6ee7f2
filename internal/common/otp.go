package common

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOtp returns a random 6-digit one-time password as a string,
// zero-padded so "012345" is a valid code.
func GenerateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
