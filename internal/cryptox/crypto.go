// Package cryptox wraps the password-hashing capability used by the service:
// hash(password) -> digest and verify(digest, password) -> bool. Digests are
// one-way; plaintext passwords are never stored or compared directly.
package cryptox

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt work factor used when the configuration does not
// specify one.
const DefaultCost = bcrypt.DefaultCost

// HashPassword derives a bcrypt digest from a plaintext password.
// Cost values outside bcrypt's supported range fail with an error.
func HashPassword(password string, cost int) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether the plaintext password matches the digest.
func VerifyPassword(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
