// Package mocks provides mock implementations of the access credential interfaces for testing.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	accessDomain "github.com/allisson/accessvault/internal/access/domain"
	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
)

// MockAccessCredentialRepository is a mock implementation of AccessCredentialRepository.
type MockAccessCredentialRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockAccessCredentialRepository) Create(ctx context.Context, credential *accessDomain.AccessCredential) error {
	return m.Called(ctx, credential).Error(0)
}

// Get mocks the Get method.
func (m *MockAccessCredentialRepository) Get(ctx context.Context, publicID string) (*accessDomain.AccessCredential, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accessDomain.AccessCredential), args.Error(1)
}

// ListByAccount mocks the ListByAccount method.
func (m *MockAccessCredentialRepository) ListByAccount(
	ctx context.Context,
	accountID string,
	offset, limit int,
) ([]*accessDomain.AccessCredential, error) {
	args := m.Called(ctx, accountID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*accessDomain.AccessCredential), args.Error(1)
}

// Revoke mocks the Revoke method.
func (m *MockAccessCredentialRepository) Revoke(ctx context.Context, publicID string, revokedAt time.Time) error {
	return m.Called(ctx, publicID, revokedAt).Error(0)
}

// UpdatePayload mocks the UpdatePayload method.
func (m *MockAccessCredentialRepository) UpdatePayload(
	ctx context.Context,
	publicID string,
	current, replacement cryptoDomain.ProtectedPayload,
) error {
	return m.Called(ctx, publicID, current, replacement).Error(0)
}

// ListStale mocks the ListStale method.
func (m *MockAccessCredentialRepository) ListStale(
	ctx context.Context,
	provider cryptoDomain.ProviderIdentity,
	keyRef string,
	after string,
	limit int,
) ([]*accessDomain.AccessCredential, error) {
	args := m.Called(ctx, provider, keyRef, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*accessDomain.AccessCredential), args.Error(1)
}

// MockAccessCredentialUseCase is a mock implementation of AccessCredentialUseCase.
type MockAccessCredentialUseCase struct {
	mock.Mock
}

// Issue mocks the Issue method.
func (m *MockAccessCredentialUseCase) Issue(
	ctx context.Context,
	input *accessDomain.IssueInput,
) (*accessDomain.IssueOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accessDomain.IssueOutput), args.Error(1)
}

// Get mocks the Get method.
func (m *MockAccessCredentialUseCase) Get(
	ctx context.Context,
	accountID, publicID string,
) (*accessDomain.AccessCredential, error) {
	args := m.Called(ctx, accountID, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accessDomain.AccessCredential), args.Error(1)
}

// List mocks the List method.
func (m *MockAccessCredentialUseCase) List(
	ctx context.Context,
	accountID string,
	offset, limit int,
) ([]*accessDomain.AccessCredential, error) {
	args := m.Called(ctx, accountID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*accessDomain.AccessCredential), args.Error(1)
}

// Revoke mocks the Revoke method.
func (m *MockAccessCredentialUseCase) Revoke(ctx context.Context, accountID, publicID string) error {
	return m.Called(ctx, accountID, publicID).Error(0)
}

// VerifySecret mocks the VerifySecret method.
func (m *MockAccessCredentialUseCase) VerifySecret(
	ctx context.Context,
	publicID, presentedSecret string,
) (*accessDomain.AccessCredential, error) {
	args := m.Called(ctx, publicID, presentedSecret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accessDomain.AccessCredential), args.Error(1)
}

// RewrapBatch mocks the RewrapBatch method.
func (m *MockAccessCredentialUseCase) RewrapBatch(
	ctx context.Context,
	target cryptoDomain.ProviderIdentity,
	after string,
	batchSize int,
) (accessDomain.RewrapResult, error) {
	args := m.Called(ctx, target, after, batchSize)
	return args.Get(0).(accessDomain.RewrapResult), args.Error(1)
}
