package service

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// OtpIssuer generates fixed-length numeric one-time codes from a
// cryptographically secure source.
type OtpIssuer struct {
	digits int
}

// NewOtpIssuer creates an issuer for codes of the given digit length.
// Lengths outside [4, 9] fall back to 6.
func NewOtpIssuer(digits int) *OtpIssuer {
	if digits < 4 || digits > 9 {
		digits = 6
	}
	return &OtpIssuer{digits: digits}
}

// Generate returns a uniformly random numeric code in
// [10^(n-1), 10^n - 1], so the leading digit is never zero.
func (o *OtpIssuer) Generate() (string, error) {
	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(o.digits-1)), nil)
	high := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(o.digits)), nil)

	n, err := rand.Int(rand.Reader, new(big.Int).Sub(high, low))
	if err != nil {
		return "", err
	}

	return new(big.Int).Add(n, low).String(), nil
}

// HashOtp returns a salted hash of the code for storage. Only the hash is
// persisted; the plaintext is revealed once, to the rider, at creation.
func HashOtp(otp string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CompareOtp reports whether the supplied code matches the stored hash.
func CompareOtp(hash, otp string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(otp)) == nil
}
