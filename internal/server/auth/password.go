package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt digest safe to store. The salt and
// cost are embedded in the returned string.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(digest), nil
}

// VerifyPassword recomputes the digest for plaintext against the stored
// hash. A mismatch is a plain false, not an error; only a structurally
// invalid stored hash produces common.ErrHashFormat. bcrypt's comparison
// is constant-time relative to the stored salt and cost.
func VerifyPassword(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", common.ErrHashFormat, err)
	}
}
