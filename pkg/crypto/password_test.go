package crypto

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestEncryptReturnsVerifiableHash(t *testing.T) {
	enc, err := NewBcryptEncrypter(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := enc.Encrypt(context.Background(), "any_value")
	require.NoError(t, err)
	assert.NotEqual(t, "any_value", hash)
	assert.NoError(t, ComparePassword(hash, "any_value"))
	assert.Error(t, ComparePassword(hash, "other_value"))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestNewBcryptEncrypterRejectsCostOutOfRange(t *testing.T) {
	_, err := NewBcryptEncrypter(bcrypt.MinCost - 1)
	assert.Error(t, err)
	_, err = NewBcryptEncrypter(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}

func TestEncryptFailsWhenBcryptFails(t *testing.T) {
	enc := BcryptEncrypter{Cost: bcrypt.MinCost}

	_, err := enc.Encrypt(context.Background(), strings.Repeat("a", 73))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestEncryptHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BcryptEncrypter{Cost: bcrypt.MinCost}.Encrypt(ctx, "any_value")
	assert.ErrorIs(t, err, context.Canceled)
}
