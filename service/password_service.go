// file: service/password_service.go

package service

import (
	"go-auth-api/logger"

	"golang.org/x/crypto/bcrypt"
)

// IPasswordHasher defines the one-way hash/verify capability consumed by the
// auth service. Verification returns false on mismatch; it never errors for a
// normal mismatch.
type IPasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

// BcryptHasher implements IPasswordHasher with bcrypt.
type BcryptHasher struct{}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

func (h *BcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
