// Package shamir implements (t, n) threshold secret sharing over a prime field.
//
// A secret field element is split into n shares, points on a random polynomial
// of degree t-1 whose constant term is the secret, so that any t shares
// reconstruct the secret exactly by Lagrange interpolation at zero and any t-1
// reveal nothing about it.
package shamir

import (
	"fmt"
	"runtime"
	"time"
)

// SecretSharing implements Shamir's Secret Sharing scheme over one field. It
// holds no per-session state and is safe for concurrent use.
type SecretSharing struct {
	field            Field
	audit            AuditEventHandler
	batchConcurrency int
}

// Option configures a SecretSharing
type Option func(*SecretSharing)

// WithAuditHandler routes audit events to handler.
func WithAuditHandler(handler AuditEventHandler) Option {
	return func(s *SecretSharing) {
		if handler != nil {
			s.audit = handler
		}
	}
}

// WithBatchConcurrency bounds the number of sessions GenerateSharesBatch runs
// at once. Values below 1 are ignored.
func WithBatchConcurrency(n int) Option {
	return func(s *SecretSharing) {
		if n >= 1 {
			s.batchConcurrency = n
		}
	}
}

// NewSecretSharing creates a new secret sharing instance over field. A nil
// field selects DefaultField.
func NewSecretSharing(field Field, opts ...Option) *SecretSharing {
	if field == nil {
		field = DefaultField()
	}

	s := &SecretSharing{
		field:            field,
		audit:            &NullAuditHandler{},
		batchConcurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Field returns the field the scheme works over
func (s *SecretSharing) Field() Field {
	return s.field
}

// GenerateShares splits secret into params.TotalShares shares, any
// params.Threshold of which reconstruct it. Shares are evaluated at
// x = 1..TotalShares and returned in that order.
func (s *SecretSharing) GenerateShares(params SchemeParams, secret Element, rng RandomSource) ([]*Share, error) {
	start := time.Now()
	shares, err := s.generateShares(params, secret, rng)
	s.recordGeneration(ReasonSplit, params, 1, len(shares), time.Since(start), err)
	return shares, err
}

func (s *SecretSharing) generateShares(params SchemeParams, secret Element, rng RandomSource) ([]*Share, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// Create polynomial of degree (threshold - 1)
	polynomial, err := NewRandomPolynomial(s.field, secret, params.Threshold, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create polynomial: %w", err)
	}
	defer polynomial.Zeroize()

	// Use 1-based indexing, x = 0 would be the secret itself
	shares := make([]*Share, params.TotalShares)
	for i := range shares {
		x := s.field.ElementFromUint64(uint64(i + 1))
		shares[i] = NewShare(x, polynomial.Evaluate(x))
	}

	return shares, nil
}

// ReconstructSecret recovers the secret from shares by Lagrange interpolation
// at zero.
//
// Only the first threshold entries of shares are used; any further entries are
// ignored without being inspected. Callers that hold more shares than needed
// should pass the subset they trust first.
func (s *SecretSharing) ReconstructSecret(shares []*Share, threshold int) (Element, error) {
	start := time.Now()
	secret, err := s.reconstructSecret(shares, threshold)
	s.recordReconstruction(len(shares), threshold, time.Since(start), err)
	return secret, err
}

func (s *SecretSharing) reconstructSecret(shares []*Share, threshold int) (Element, error) {
	if threshold < 1 {
		return nil, ErrInvalidParameters.
			WithDetails(fmt.Sprintf("threshold must be at least 1, got %d", threshold)).
			WithContext("threshold", threshold)
	}
	if len(shares) < threshold {
		return nil, ErrInsufficientShares.
			WithDetails(fmt.Sprintf("need %d, got %d", threshold, len(shares))).
			WithContext("threshold", threshold).
			WithContext("supplied", len(shares))
	}

	// Use first 'threshold' shares
	selected := shares[:threshold]

	xs := make([]Element, threshold)
	for i, share := range selected {
		if share == nil || share.X == nil || share.Y == nil {
			return nil, ErrInvalidParameters.
				WithDetails(fmt.Sprintf("share %d is incomplete", i)).
				WithContext("share", i)
		}
		if !s.field.Owns(share.X) || !s.field.Owns(share.Y) {
			bad, what := share.X, fmt.Sprintf("share %d x-coordinate", i)
			if s.field.Owns(bad) {
				bad, what = share.Y, fmt.Sprintf("share %d y-coordinate", i)
			}
			return nil, foreignElementError(s.field, what, bad).WithContext("share", i)
		}
		xs[i] = share.X
	}

	coefficients, err := LagrangeCoefficientsAtZero(s.field, xs)
	if err != nil {
		return nil, err
	}

	// Lagrange interpolation at x = 0
	secret := s.field.Zero()
	for i, share := range selected {
		secret = secret.Add(share.Y.Mul(coefficients[i]))
	}

	return secret, nil
}

func (s *SecretSharing) recordGeneration(reason AuditEventReason, params SchemeParams, sessions, shares int, duration time.Duration, err error) {
	builder := NewAuditEventBuilder(AuditEventSharesGenerated, reason).
		WithField(s.field.Name()).
		WithParams(params.Threshold, params.TotalShares).
		WithError(err)
	s.audit.OnSharesGenerated(builder.BuildShareGeneration(duration, sessions, shares))

	if err != nil && isValidationError(err) {
		s.recordValidationFailure("split", err, map[string]interface{}{
			"threshold":    params.Threshold,
			"total_shares": params.TotalShares,
		})
	}
}

func (s *SecretSharing) recordReconstruction(supplied, threshold int, duration time.Duration, err error) {
	used := 0
	if err == nil {
		used = threshold
	}

	builder := NewAuditEventBuilder(AuditEventSecretReconstructed, ReasonCombine).
		WithField(s.field.Name()).
		WithParams(threshold, 0).
		WithError(err)
	s.audit.OnSecretReconstructed(builder.BuildReconstruction(duration, supplied, used))

	if err != nil && isValidationError(err) {
		s.recordValidationFailure("combine", err, map[string]interface{}{
			"threshold": threshold,
			"supplied":  supplied,
		})
	}
}

func (s *SecretSharing) recordValidationFailure(validationType string, err error, inputs map[string]interface{}) {
	builder := NewAuditEventBuilder(AuditEventValidationFailure, ReasonValidationError).
		WithField(s.field.Name()).
		WithError(err)
	s.audit.OnValidationFailure(builder.BuildValidationFailure(validationType, ErrorCode(err), inputs))
}

// GenerateShares splits secret, an element of DefaultField, into shares.
func GenerateShares(params SchemeParams, secret Element, rng RandomSource) ([]*Share, error) {
	return NewSecretSharing(nil).GenerateShares(params, secret, rng)
}

// ReconstructSecret reconstructs a DefaultField secret from the first threshold
// shares.
func ReconstructSecret(shares []*Share, threshold int) (Element, error) {
	return NewSecretSharing(nil).ReconstructSecret(shares, threshold)
}
