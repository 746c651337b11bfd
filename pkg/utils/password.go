package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes plaintext password dengan bcrypt cost 10
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword membandingkan plaintext dengan hash
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
