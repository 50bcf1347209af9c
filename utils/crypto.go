package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when no stored digest exists, so a lookup
// miss costs the same as a password mismatch.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("bookshelf-dummy-password"), bcrypt.DefaultCost)

// HashPassword returns a salted bcrypt digest of plaintext. A cost of 0 uses bcrypt.DefaultCost.
func HashPassword(plaintext string, cost int) (string, error) {
	if plaintext == "" {
		return "", errors.New("password must not be empty")
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches digest. bcrypt compares the
// derived hashes in constant time.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// BurnPasswordCheck performs a comparison whose result is discarded.
func BurnPasswordCheck(plaintext string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plaintext))
}
