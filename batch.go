package shamir

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// SourceFactory returns the randomness source for batch session i. Every call
// must return an independent source.
type SourceFactory func(session int) RandomSource

// CryptoSourceFactory gives every session its own crypto/rand backed source.
func CryptoSourceFactory(int) RandomSource {
	return NewCryptoRandomSource()
}

// GenerateSharesBatch runs one independent sharing session per secret with the
// same parameters. Sessions share nothing but the read-only SecretSharing; each
// draws coefficients from the source newSource returns for its index. Results
// are returned in the order of secrets. The first failing session cancels the
// rest and its error is returned.
func (s *SecretSharing) GenerateSharesBatch(ctx context.Context, params SchemeParams, secrets []Element, newSource SourceFactory) ([][]*Share, error) {
	start := time.Now()
	results, err := s.generateSharesBatch(ctx, params, secrets, newSource)

	total := 0
	for _, shares := range results {
		total += len(shares)
	}
	s.recordGeneration(ReasonBatchSplit, params, len(secrets), total, time.Since(start), err)
	return results, err
}

func (s *SecretSharing) generateSharesBatch(ctx context.Context, params SchemeParams, secrets []Element, newSource SourceFactory) ([][]*Share, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if newSource == nil {
		return nil, ErrInvalidParameters.WithDetails("batch sharing needs a source factory")
	}

	results := make([][]*Share, len(secrets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)

	for i, secret := range secrets {
		i, secret := i, secret
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			shares, err := s.generateShares(params, secret, newSource(i))
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			results[i] = shares
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// Sessions that finished before the failure still hold share values
		zeroizeBatch(results)
		return nil, err
	}
	return results, nil
}

func zeroizeBatch(results [][]*Share) {
	for _, shares := range results {
		for _, share := range shares {
			if share != nil {
				share.Zeroize()
			}
		}
	}
}
