package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	accessDomain "github.com/allisson/accessvault/internal/access/domain"
	accessUseCase "github.com/allisson/accessvault/internal/access/usecase"
	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
)

// RunRewrapCredentials reencrypts stored credential secrets under the current key of
// target, walking every stale credential once in public id order. Records that fail
// their integrity check are skipped and reported; an unavailable provider stops the
// run, and records updated so far stay updated.
func RunRewrapCredentials(
	ctx context.Context,
	useCase accessUseCase.AccessCredentialUseCase,
	logger *slog.Logger,
	writer io.Writer,
	targetStr string,
	batchSize int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	target, err := cryptoDomain.ParseProviderIdentity(targetStr)
	if err != nil {
		return fmt.Errorf("invalid target: %w", err)
	}

	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}

	logger.Info("starting credential rewrap",
		slog.String("target", target.String()),
		slog.Int("batch_size", batchSize),
	)

	var total accessDomain.RewrapResult
	for {
		batch, err := useCase.RewrapBatch(ctx, target, total.Next, batchSize)
		total.Rewrapped += batch.Rewrapped
		total.Conflicts += batch.Conflicts
		total.Skipped += batch.Skipped
		if err != nil {
			return fmt.Errorf("failed to rewrap credentials after %d updates: %w", total.Rewrapped, err)
		}
		if batch.Next == "" {
			break
		}
		total.Next = batch.Next
		logger.Info("rewrapped batch of credentials",
			slog.Int("rewrapped_in_batch", batch.Rewrapped),
			slog.Int("total_rewrapped", total.Rewrapped),
			slog.Int("total_conflicts", total.Conflicts),
			slog.Int("total_skipped", total.Skipped),
		)
	}

	logger.Info("credential rewrap completed",
		slog.Int("total_rewrapped", total.Rewrapped),
		slog.Int("total_conflicts", total.Conflicts),
		slog.Int("total_skipped", total.Skipped),
	)

	if format == "json" {
		err = writeJSON(writer, map[string]any{
			"target":          target.String(),
			"total_rewrapped": total.Rewrapped,
			"total_conflicts": total.Conflicts,
			"total_skipped":   total.Skipped,
		})
	} else {
		_, err = fmt.Fprintf(writer, "Rewrapped %d credential(s) to %s (%d conflict(s), %d skipped)\n",
			total.Rewrapped, target, total.Conflicts, total.Skipped)
	}
	if err != nil {
		return err
	}

	if total.Skipped > 0 {
		return fmt.Errorf("%d credential(s) failed their integrity check and were not rewrapped", total.Skipped)
	}
	return nil
}
