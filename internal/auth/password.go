// Package auth provides one-way password hashing for credential storage.
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted bcrypt digest from plaintext. Each call salts
// freshly, so two hashes of the same input differ.
func HashPassword(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plaintext matches the stored digest. bcrypt's
// comparison is constant-time with respect to the password content; a
// malformed digest simply fails the check.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
