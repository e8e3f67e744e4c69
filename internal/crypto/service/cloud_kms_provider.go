package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	kmstypes "github.com/aws/aws-sdk-go-v2/service/kms/types"
	"github.com/aws/smithy-go"
	"gocloud.dev/gcerrors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
)

// CloudKMSProvider delegates encryption to an external key-management service.
//
// The keeper performs envelope encryption on the service side: a data key is
// generated per payload and wrapped by the addressed master key. No primitive
// is applied locally. Each call is bounded by timeout on top of the caller's
// context; retries are left to the caller.
type CloudKMSProvider struct {
	keeper  KMSKeeper
	keyRef  string
	timeout time.Duration
}

// NewCloudKMSProvider creates a provider over keeper. keyRef names the key
// and is recorded on every payload; it must not contain key material.
func NewCloudKMSProvider(keeper KMSKeeper, keyRef string, timeout time.Duration) *CloudKMSProvider {
	return &CloudKMSProvider{
		keeper:  keeper,
		keyRef:  keyRef,
		timeout: timeout,
	}
}

// Identity returns CloudKMS.
func (p *CloudKMSProvider) Identity() cryptoDomain.ProviderIdentity {
	return cryptoDomain.CloudKMS
}

// KeyRef returns the key reference recorded on payloads.
func (p *CloudKMSProvider) KeyRef() string {
	return p.keyRef
}

// Encrypt wraps plaintext with the external key. Any failure is reported as
// ErrProviderUnavailable.
func (p *CloudKMSProvider) Encrypt(
	ctx context.Context,
	plaintext []byte,
) (cryptoDomain.ProtectedPayload, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	ciphertext, err := p.keeper.Encrypt(ctx, plaintext)
	if err != nil {
		return cryptoDomain.ProtectedPayload{}, fmt.Errorf(
			"%w: encrypt: %s",
			cryptoDomain.ErrProviderUnavailable,
			gcerrors.Code(err),
		)
	}

	return cryptoDomain.ProtectedPayload{
		Provider:   cryptoDomain.CloudKMS,
		KeyRef:     p.keyRef,
		Ciphertext: ciphertext,
	}, nil
}

// Decrypt unwraps a payload produced under the same key reference.
// Transport and authorization failures are ErrProviderUnavailable; a rejected
// ciphertext is ErrDecryptIntegrity.
func (p *CloudKMSProvider) Decrypt(
	ctx context.Context,
	payload cryptoDomain.ProtectedPayload,
) ([]byte, error) {
	if payload.Provider != cryptoDomain.CloudKMS || payload.KeyRef != p.keyRef {
		return nil, cryptoDomain.ErrDecryptIntegrity
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	plaintext, err := p.keeper.Decrypt(ctx, payload.Ciphertext)
	if err != nil {
		return nil, classifyDecryptError(ctx, err)
	}
	return plaintext, nil
}

// Close releases the keeper.
func (p *CloudKMSProvider) Close() error {
	return p.keeper.Close()
}

func (p *CloudKMSProvider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}

// classifyDecryptError maps a keeper error to a domain error. Only an answer
// from the key service about the ciphertext itself is an integrity failure;
// anything that stopped the service from answering is ErrProviderUnavailable.
func classifyDecryptError(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: decrypt: %s", cryptoDomain.ErrProviderUnavailable, gcerrors.DeadlineExceeded)
	}

	code := gcerrors.Code(err)
	if serviceUnreachable(err) {
		return fmt.Errorf("%w: decrypt: %s", cryptoDomain.ErrProviderUnavailable, code)
	}

	switch code {
	case gcerrors.DeadlineExceeded,
		gcerrors.Canceled,
		gcerrors.PermissionDenied,
		gcerrors.ResourceExhausted,
		gcerrors.NotFound,
		gcerrors.Internal,
		gcerrors.Unimplemented:
		return fmt.Errorf("%w: decrypt: %s", cryptoDomain.ErrProviderUnavailable, code)
	default:
		return cryptoDomain.ErrDecryptIntegrity
	}
}

// serviceUnreachable inspects the driver's underlying error. The gocloud
// drivers report gRPC Unavailable and Unauthenticated, AWS transport and
// credential failures, and most Azure statuses as gcerrors.Unknown.
func serviceUnreachable(err error) bool {
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unavailable,
			codes.Unauthenticated,
			codes.PermissionDenied,
			codes.DeadlineExceeded,
			codes.Canceled,
			codes.ResourceExhausted,
			codes.Aborted,
			codes.Internal,
			codes.NotFound,
			codes.Unimplemented:
			return true
		default:
			return false
		}
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case (&kmstypes.InvalidCiphertextException{}).ErrorCode(),
			(&kmstypes.IncorrectKeyException{}).ErrorCode(),
			(&kmstypes.InvalidKeyUsageException{}).ErrorCode():
			return false
		default:
			return true
		}
	}
	var opErr *smithy.OperationError
	if errors.As(err, &opErr) {
		return true
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode != http.StatusBadRequest
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
