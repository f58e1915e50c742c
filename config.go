package shamir

import (
	"fmt"
	"strings"
)

// Configuration describes a sharing setup. It carries JSON tags so callers can
// load it from JSON or YAML.
type Configuration struct {
	Field       FieldType `json:"field"`
	Threshold   int       `json:"threshold"`
	TotalShares int       `json:"total_shares"`
}

// SchemeParams returns the validated parameters of the configuration.
func (c Configuration) SchemeParams() (SchemeParams, error) {
	return NewScheme(c.Threshold, c.TotalShares)
}

// ConfigurationValidator provides validation for sharing configuration
type ConfigurationValidator struct {
	supportedFields map[FieldType]bool
	thresholds      *ThresholdValidator
}

// NewDefaultConfigurationValidator creates a validator accepting every built-in
// field
func NewDefaultConfigurationValidator() *ConfigurationValidator {
	supported := make(map[FieldType]bool)
	for _, ft := range SupportedFields() {
		supported[ft] = true
	}

	return &ConfigurationValidator{
		supportedFields: supported,
		thresholds:      NewDefaultThresholdValidator(),
	}
}

// ValidateField validates that a field is supported
func (cv *ConfigurationValidator) ValidateField(fieldType FieldType) *ValidationResult {
	result := newValidationResult(SecurityLevelHigh)

	if fieldType == "" {
		result.Valid = false
		result.SecurityLevel = SecurityLevelLow
		result.Errors = append(result.Errors, "field name cannot be empty")
		return result
	}

	if !cv.supportedFields[fieldType] {
		names := make([]string, 0, len(cv.supportedFields))
		for _, ft := range SupportedFields() {
			if cv.supportedFields[ft] {
				names = append(names, string(ft))
			}
		}
		result.Valid = false
		result.SecurityLevel = SecurityLevelLow
		result.Errors = append(result.Errors, fmt.Sprintf("unsupported field: %s", fieldType))
		result.Recommendations = append(result.Recommendations, "use a supported field: "+strings.Join(names, ", "))
	}

	return result
}

// ValidateConfiguration validates a complete configuration
func (cv *ConfigurationValidator) ValidateConfiguration(cfg Configuration) *ValidationResult {
	result := newValidationResult(SecurityLevelHigh)

	result.merge(cv.ValidateField(cfg.Field))
	result.merge(cv.thresholds.ValidateSchemeParameters(SchemeParams{
		Threshold:   cfg.Threshold,
		TotalShares: cfg.TotalShares,
	}))

	return result
}

// NewSecretSharingFromConfig validates cfg and returns a SecretSharing over its
// field together with its scheme parameters. The audit handler passed in opts
// receives a configuration change event.
func NewSecretSharingFromConfig(cfg Configuration, opts ...Option) (*SecretSharing, SchemeParams, error) {
	if cfg.Field == "" {
		cfg.Field = FieldBN254
	}

	if result := NewDefaultConfigurationValidator().ValidateConfiguration(cfg); !result.Valid {
		err := ErrInvalidConfiguration.
			WithDetails(strings.Join(result.Errors, "; ")).
			WithContext("field", string(cfg.Field))
		// Still report the failure through the caller's handler
		NewSecretSharing(nil, opts...).recordValidationFailure("configuration", err, map[string]interface{}{
			"field":        string(cfg.Field),
			"threshold":    cfg.Threshold,
			"total_shares": cfg.TotalShares,
		})
		return nil, SchemeParams{}, err
	}

	field, err := NewField(cfg.Field)
	if err != nil {
		return nil, SchemeParams{}, err
	}
	params, err := cfg.SchemeParams()
	if err != nil {
		return nil, SchemeParams{}, err
	}

	sharing := NewSecretSharing(field, opts...)
	sharing.audit.OnConfigurationChange(
		NewAuditEventBuilder(AuditEventConfigurationChange, ReasonInitialization).
			WithField(field.Name()).
			WithParams(params.Threshold, params.TotalShares).
			Build())

	return sharing, params, nil
}

// ConfigurationCompatibilityChecker checks whether shares issued under one
// configuration stay usable under another
type ConfigurationCompatibilityChecker struct{}

// NewConfigurationCompatibilityChecker creates a new compatibility checker
func NewConfigurationCompatibilityChecker() *ConfigurationCompatibilityChecker {
	return &ConfigurationCompatibilityChecker{}
}

// CheckCompatibility checks if shares created under oldConfig can be combined
// under newConfig
func (ccc *ConfigurationCompatibilityChecker) CheckCompatibility(oldConfig, newConfig *Configuration) *ValidationResult {
	result := newValidationResult(SecurityLevelMedium)

	if oldConfig == nil || newConfig == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "configurations cannot be nil")
		return result
	}

	// Shares are field elements; another field cannot decode them
	if oldConfig.Field == "" || newConfig.Field == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "fields cannot be empty for compatibility check")
	} else if oldConfig.Field != newConfig.Field {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("field mismatch: %s -> %s", oldConfig.Field, newConfig.Field))
	}

	if oldConfig.Threshold != newConfig.Threshold {
		if newConfig.Threshold > oldConfig.Threshold {
			result.Warnings = append(result.Warnings, "threshold increased - existing shares still reconstruct with the old threshold")
		} else {
			result.Valid = false
			result.Errors = append(result.Errors, "threshold decreased - existing shares cannot reconstruct with fewer points")
		}
	}

	if oldConfig.TotalShares != newConfig.TotalShares {
		result.Recommendations = append(result.Recommendations, "share count changed - reissue shares to reach the new holders")
	}

	return result
}
