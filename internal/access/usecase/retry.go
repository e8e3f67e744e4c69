package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
)

// RetryPolicy bounds retries of vault calls that fail with ErrProviderUnavailable.
// Any other error, including ErrDecryptIntegrity, is returned on the first attempt.
type RetryPolicy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy returns a policy with maxRetries retries starting at 100ms.
func DefaultRetryPolicy(maxRetries int) RetryPolicy {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return RetryPolicy{
		MaxRetries:      uint64(maxRetries),
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     2 * time.Second,
	}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, p.MaxRetries), ctx)
}

// retryUnavailable runs op until it succeeds, fails permanently or the policy
// is exhausted.
func retryUnavailable[T any](ctx context.Context, policy RetryPolicy, op func() (T, error)) (T, error) {
	return backoff.RetryWithData(func() (T, error) {
		out, err := op()
		if err != nil && !errors.Is(err, cryptoDomain.ErrProviderUnavailable) {
			return out, backoff.Permanent(err)
		}
		return out, err
	}, policy.backOff(ctx))
}
