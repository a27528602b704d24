package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the work factor every stored digest was produced with.
// Raising it only affects newly hashed passwords.
const bcryptCost = 5

// HashPassword returns the salted bcrypt digest of plaintext.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether plaintext matches the stored digest.
// A mismatch is a normal outcome, never an error.
func CheckPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
