package shamir

import (
	"fmt"
	"math"
)

// SecurityLevel represents the security level of threshold parameters
type SecurityLevel string

const (
	SecurityLevelLow    SecurityLevel = "low"
	SecurityLevelMedium SecurityLevel = "medium"
	SecurityLevelHigh   SecurityLevel = "high"
)

// ValidationResult contains the result of an advisory validation
type ValidationResult struct {
	Valid           bool          `json:"valid"`
	SecurityLevel   SecurityLevel `json:"security_level"`
	Warnings        []string      `json:"warnings,omitempty"`
	Errors          []string      `json:"errors,omitempty"`
	Recommendations []string      `json:"recommendations,omitempty"`
}

func newValidationResult(level SecurityLevel) *ValidationResult {
	return &ValidationResult{
		Valid:           true,
		SecurityLevel:   level,
		Warnings:        []string{},
		Errors:          []string{},
		Recommendations: []string{},
	}
}

// merge folds other into r, keeping the lower security level.
func (r *ValidationResult) merge(other *ValidationResult) {
	if !other.Valid {
		r.Valid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Recommendations = append(r.Recommendations, other.Recommendations...)
	r.SecurityLevel = getMinimumSecurityLevel([]SecurityLevel{r.SecurityLevel, other.SecurityLevel})
}

// ThresholdValidator grades scheme parameters. Unlike SchemeParams.Validate it
// only rejects what the scheme cannot do and reports the rest as warnings.
type ThresholdValidator struct {
	MaxTotalShares      int     `json:"max_total_shares"`
	RecommendedMinRatio float64 `json:"recommended_min_ratio"` // Minimum recommended threshold ratio
	RecommendedMaxRatio float64 `json:"recommended_max_ratio"` // Maximum recommended threshold ratio
}

// NewDefaultThresholdValidator creates a validator with default parameters
func NewDefaultThresholdValidator() *ThresholdValidator {
	return &ThresholdValidator{
		MaxTotalShares:      1 << 16, // Keeps O(t^2) reconstruction practical
		RecommendedMinRatio: 0.51,    // Just over half
		RecommendedMaxRatio: 0.80,    // Leave room for lost shares
	}
}

// ValidateSchemeParameters validates threshold and share count
func (tv *ThresholdValidator) ValidateSchemeParameters(params SchemeParams) *ValidationResult {
	result := newValidationResult(SecurityLevelMedium)

	if err := params.Validate(); err != nil {
		result.Valid = false
		result.SecurityLevel = SecurityLevelLow
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	threshold, total := params.Threshold, params.TotalShares

	if tv.MaxTotalShares > 0 && total > tv.MaxTotalShares {
		result.Valid = false
		result.SecurityLevel = SecurityLevelLow
		result.Errors = append(result.Errors, fmt.Sprintf("total shares exceeds maximum of %d", tv.MaxTotalShares))
		return result
	}

	if threshold == 1 {
		result.SecurityLevel = SecurityLevelLow
		result.Warnings = append(result.Warnings, "threshold of 1 makes every share equal to the secret")
		return result
	}

	thresholdRatio := float64(threshold) / float64(total)
	if thresholdRatio < tv.RecommendedMinRatio {
		result.SecurityLevel = SecurityLevelLow
		result.Warnings = append(result.Warnings, "threshold ratio is below recommended minimum; a minority of holders can reconstruct")
		result.Recommendations = append(result.Recommendations,
			fmt.Sprintf("consider increasing threshold to at least %d", int(math.Ceil(float64(total)*tv.RecommendedMinRatio))))
	} else {
		result.SecurityLevel = SecurityLevelHigh
	}

	if threshold == total {
		result.Warnings = append(result.Warnings, "threshold equals total shares - losing any share loses the secret")
		result.Recommendations = append(result.Recommendations, "consider issuing spare shares")
	} else if thresholdRatio > tv.RecommendedMaxRatio {
		result.Warnings = append(result.Warnings, "threshold ratio is high, few shares may be lost")
	}

	return result
}

// ValidateShareSet checks a reconstruction set for structural problems before
// it is used: nil shares, zero x-coordinates and duplicate x-coordinates
// anywhere in the list.
func ValidateShareSet(shares []*Share, threshold int) *ValidationResult {
	result := newValidationResult(SecurityLevelMedium)

	if len(shares) < threshold {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("need at least %d shares, got %d", threshold, len(shares)))
	}
	if len(shares) > threshold && threshold > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d shares supplied, only the first %d are used", len(shares), threshold))
	}

	seen := make(map[string]int, len(shares))
	for i, share := range shares {
		if share == nil || share.X == nil || share.Y == nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("share %d is incomplete", i))
			continue
		}
		if share.X.IsZero() {
			result.Warnings = append(result.Warnings, fmt.Sprintf("share %d has x = 0", i))
		}

		key := share.X.String()
		if first, dup := seen[key]; dup {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("shares %d and %d have the same x-coordinate", first, i))
			continue
		}
		seen[key] = i
	}

	if !result.Valid {
		result.SecurityLevel = SecurityLevelLow
	}
	return result
}

// getMinimumSecurityLevel returns the minimum security level from a slice
func getMinimumSecurityLevel(levels []SecurityLevel) SecurityLevel {
	if len(levels) == 0 {
		return SecurityLevelMedium
	}

	minLevel := SecurityLevelHigh
	for _, level := range levels {
		switch level {
		case SecurityLevelLow:
			return SecurityLevelLow // Immediately return lowest
		case SecurityLevelMedium:
			minLevel = SecurityLevelMedium
		}
	}

	return minLevel
}
