// Package mocks provides mock implementations of the vault for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
)

// MockVaultUseCase is a mock implementation of VaultUseCase for testing.
type MockVaultUseCase struct {
	mock.Mock
}

// Protect mocks the Protect method of VaultUseCase.
func (m *MockVaultUseCase) Protect(ctx context.Context, plaintext []byte) (cryptoDomain.ProtectedPayload, error) {
	args := m.Called(ctx, plaintext)
	return args.Get(0).(cryptoDomain.ProtectedPayload), args.Error(1)
}

// Reveal mocks the Reveal method of VaultUseCase.
func (m *MockVaultUseCase) Reveal(ctx context.Context, payload cryptoDomain.ProtectedPayload) ([]byte, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Reencrypt mocks the Reencrypt method of VaultUseCase.
func (m *MockVaultUseCase) Reencrypt(
	ctx context.Context,
	payload cryptoDomain.ProtectedPayload,
	target cryptoDomain.ProviderIdentity,
) (cryptoDomain.ProtectedPayload, error) {
	args := m.Called(ctx, payload, target)
	return args.Get(0).(cryptoDomain.ProtectedPayload), args.Error(1)
}

// KeyRef mocks the KeyRef method of VaultUseCase.
func (m *MockVaultUseCase) KeyRef(target cryptoDomain.ProviderIdentity) (string, error) {
	args := m.Called(target)
	return args.String(0), args.Error(1)
}

// ActiveProvider mocks the ActiveProvider method of VaultUseCase.
func (m *MockVaultUseCase) ActiveProvider() cryptoDomain.ProviderIdentity {
	return m.Called().Get(0).(cryptoDomain.ProviderIdentity)
}
