package shamir

import (
	"time"

	"github.com/google/uuid"
)

// AuditEventType represents the type of audit event
type AuditEventType string

const (
	// Sharing events
	AuditEventSharesGenerated     AuditEventType = "shares_generated"
	AuditEventSecretReconstructed AuditEventType = "secret_reconstructed"

	// Configuration events
	AuditEventConfigurationChange AuditEventType = "configuration_change"

	// Error events
	AuditEventValidationFailure AuditEventType = "validation_failure"
)

// AuditEventReason represents why an event occurred
type AuditEventReason string

const (
	ReasonSplit           AuditEventReason = "split"
	ReasonBatchSplit      AuditEventReason = "batch_split"
	ReasonCombine         AuditEventReason = "combine"
	ReasonInitialization  AuditEventReason = "initialization"
	ReasonValidationError AuditEventReason = "validation_error"
)

// AuditEvent represents a single audit event. Events never carry secrets,
// coefficients or share values.
type AuditEvent struct {
	// Event metadata
	EventID   string           `json:"event_id"`
	Timestamp time.Time        `json:"timestamp"`
	EventType AuditEventType   `json:"event_type"`
	Reason    AuditEventReason `json:"reason"`

	// Scheme information
	FieldName   string `json:"field_name,omitempty"`
	Threshold   int    `json:"threshold,omitempty"`
	TotalShares int    `json:"total_shares,omitempty"`

	// Success/failure information
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`

	// Additional context
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ShareGenerationEvent contains details about a split
type ShareGenerationEvent struct {
	AuditEvent

	Duration        time.Duration `json:"duration"`
	Sessions        int           `json:"sessions"`
	SharesGenerated int           `json:"shares_generated"`
}

// ReconstructionEvent contains details about a combine
type ReconstructionEvent struct {
	AuditEvent

	Duration       time.Duration `json:"duration"`
	SharesSupplied int           `json:"shares_supplied"`
	SharesUsed     int           `json:"shares_used"`
}

// ValidationFailureEvent contains details about rejected input
type ValidationFailureEvent struct {
	AuditEvent

	ValidationType string                 `json:"validation_type"` // "split", "combine", "configuration"
	FailureReason  string                 `json:"failure_reason"`
	InputValues    map[string]interface{} `json:"input_values,omitempty"`
}

// AuditEventHandler defines the interface for handling audit events.
// Applications implement this interface to record events according to their needs.
// Handlers may be called concurrently from batch operations.
type AuditEventHandler interface {
	// OnSharesGenerated is called after every split attempt
	OnSharesGenerated(event *ShareGenerationEvent)

	// OnSecretReconstructed is called after every combine attempt
	OnSecretReconstructed(event *ReconstructionEvent)

	// OnValidationFailure is called when caller input is rejected
	OnValidationFailure(event *ValidationFailureEvent)

	// OnConfigurationChange is called when a configuration is applied
	OnConfigurationChange(event *AuditEvent)
}

// NullAuditHandler is a no-op implementation of AuditEventHandler
// Used when no audit handling is needed
type NullAuditHandler struct{}

func (n *NullAuditHandler) OnSharesGenerated(event *ShareGenerationEvent)     {}
func (n *NullAuditHandler) OnSecretReconstructed(event *ReconstructionEvent)  {}
func (n *NullAuditHandler) OnValidationFailure(event *ValidationFailureEvent) {}
func (n *NullAuditHandler) OnConfigurationChange(event *AuditEvent)           {}

// MultiAuditHandler fans every event out to each handler in order.
type MultiAuditHandler []AuditEventHandler

func (m MultiAuditHandler) OnSharesGenerated(event *ShareGenerationEvent) {
	for _, h := range m {
		h.OnSharesGenerated(event)
	}
}

func (m MultiAuditHandler) OnSecretReconstructed(event *ReconstructionEvent) {
	for _, h := range m {
		h.OnSecretReconstructed(event)
	}
}

func (m MultiAuditHandler) OnValidationFailure(event *ValidationFailureEvent) {
	for _, h := range m {
		h.OnValidationFailure(event)
	}
}

func (m MultiAuditHandler) OnConfigurationChange(event *AuditEvent) {
	for _, h := range m {
		h.OnConfigurationChange(event)
	}
}

// AuditEventBuilder helps construct audit events with proper defaults
type AuditEventBuilder struct {
	event *AuditEvent
}

// NewAuditEventBuilder creates a new audit event builder
func NewAuditEventBuilder(eventType AuditEventType, reason AuditEventReason) *AuditEventBuilder {
	return &AuditEventBuilder{
		event: &AuditEvent{
			EventID:   uuid.NewString(),
			Timestamp: time.Now(),
			EventType: eventType,
			Reason:    reason,
			Success:   true, // Default to success, can be overridden
			Metadata:  make(map[string]interface{}),
		},
	}
}

// WithField sets the field name for the event
func (b *AuditEventBuilder) WithField(fieldName string) *AuditEventBuilder {
	b.event.FieldName = fieldName
	return b
}

// WithParams sets scheme parameters for the event
func (b *AuditEventBuilder) WithParams(threshold, totalShares int) *AuditEventBuilder {
	b.event.Threshold = threshold
	b.event.TotalShares = totalShares
	return b
}

// WithError marks the event as failed and sets error information
func (b *AuditEventBuilder) WithError(err error) *AuditEventBuilder {
	if err == nil {
		return b
	}
	b.event.Success = false
	b.event.Error = err.Error()
	b.event.ErrorCode = ErrorCode(err)
	return b
}

// WithMetadata adds metadata to the event
func (b *AuditEventBuilder) WithMetadata(key string, value interface{}) *AuditEventBuilder {
	b.event.Metadata[key] = value
	return b
}

// Build returns the constructed audit event
func (b *AuditEventBuilder) Build() *AuditEvent {
	return b.event
}

// BuildShareGeneration returns a ShareGenerationEvent
func (b *AuditEventBuilder) BuildShareGeneration(duration time.Duration, sessions, sharesGenerated int) *ShareGenerationEvent {
	return &ShareGenerationEvent{
		AuditEvent:      *b.event,
		Duration:        duration,
		Sessions:        sessions,
		SharesGenerated: sharesGenerated,
	}
}

// BuildReconstruction returns a ReconstructionEvent
func (b *AuditEventBuilder) BuildReconstruction(duration time.Duration, sharesSupplied, sharesUsed int) *ReconstructionEvent {
	return &ReconstructionEvent{
		AuditEvent:     *b.event,
		Duration:       duration,
		SharesSupplied: sharesSupplied,
		SharesUsed:     sharesUsed,
	}
}

// BuildValidationFailure returns a ValidationFailureEvent
func (b *AuditEventBuilder) BuildValidationFailure(validationType, failureReason string, inputValues map[string]interface{}) *ValidationFailureEvent {
	return &ValidationFailureEvent{
		AuditEvent:     *b.event,
		ValidationType: validationType,
		FailureReason:  failureReason,
		InputValues:    inputValues,
	}
}

// isValidationError reports whether err was caused by caller input rather than
// the environment.
func isValidationError(err error) bool {
	switch ErrorCode(err) {
	case ErrInvalidParameters.Code, ErrInsufficientShares.Code, ErrDegenerateShareSet.Code, ErrInvalidElement.Code:
		return true
	}
	return false
}
