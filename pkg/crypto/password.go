package crypto

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 12

// BcryptEncrypter hashes passwords with bcrypt at a fixed cost.
type BcryptEncrypter struct {
	Cost int
}

// NewBcryptEncrypter validates cost and returns an encrypter.
func NewBcryptEncrypter(cost int) (BcryptEncrypter, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return BcryptEncrypter{}, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return BcryptEncrypter{Cost: cost}, nil
}

// Encrypt returns the bcrypt hash of plaintext.
func (e BcryptEncrypter) Encrypt(ctx context.Context, plaintext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), e.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword compares plaintext to hashed secret.
func ComparePassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
