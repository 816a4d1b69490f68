package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted, one-way bcrypt digest of plaintext. bcrypt
// generates a fresh random salt per call, so hashing the same password twice
// yields different digests.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether plaintext matches digest. The comparison is
// constant-time inside bcrypt.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
