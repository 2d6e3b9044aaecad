package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the work factor for password hashing. DefaultCost is fine
// for the login volumes of a per-school deployment.
const bcryptCost = bcrypt.DefaultCost

// HashPassword derives a bcrypt hash from a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the plaintext password matches the hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
