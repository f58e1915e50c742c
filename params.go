package shamir

import (
	"fmt"
)

// SchemeParams holds the threshold t and share count n of a sharing, with
// 1 <= t <= n.
type SchemeParams struct {
	Threshold   int `json:"threshold"`
	TotalShares int `json:"total_shares"`
}

// NewScheme validates and returns scheme parameters.
func NewScheme(threshold, totalShares int) (SchemeParams, error) {
	params := SchemeParams{Threshold: threshold, TotalShares: totalShares}
	if err := params.Validate(); err != nil {
		return SchemeParams{}, err
	}
	return params, nil
}

// Validate checks 1 <= Threshold <= TotalShares.
func (p SchemeParams) Validate() error {
	if p.Threshold < 1 {
		return ErrInvalidParameters.
			WithDetails(fmt.Sprintf("threshold must be at least 1, got %d", p.Threshold)).
			WithContext("threshold", p.Threshold)
	}
	if p.TotalShares < p.Threshold {
		return ErrInvalidParameters.
			WithDetails(fmt.Sprintf("total shares (%d) must be >= threshold (%d)", p.TotalShares, p.Threshold)).
			WithContext("threshold", p.Threshold).
			WithContext("total_shares", p.TotalShares)
	}
	return nil
}

func (p SchemeParams) String() string {
	return fmt.Sprintf("%d-of-%d", p.Threshold, p.TotalShares)
}
