package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt only keys off the first 72 bytes of input. Truncating explicitly, on
// both the hash and the verify path, keeps logins working for longer
// passwords instead of failing with ErrPasswordTooLong.
const bcryptMaxPasswordBytes = 72

func truncateForBcrypt(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxPasswordBytes {
		b = b[:bcryptMaxPasswordBytes]
	}
	return b
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(truncateForBcrypt(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword reports whether password matches hashedPassword. A malformed
// hash is treated as a mismatch, never an error.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), truncateForBcrypt(password))
	return err == nil
}
