package shamir

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// allFields returns one instance of every backend.
func allFields() []Field {
	return []Field{NewBN254Field(), NewSecp256k1Field(), NewEd25519Field()}
}

func seededSource(t testing.TB, label string) *DeterministicSource {
	t.Helper()
	src, err := NewDeterministicSource([]byte("test seed for "+label), label)
	require.NoError(t, err)
	return src
}

// failingReader always returns err.
type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

var errNoEntropy = errors.New("entropy pool exhausted")

// recordingAuditHandler keeps every event it receives.
type recordingAuditHandler struct {
	mu             sync.Mutex
	generated      []*ShareGenerationEvent
	reconstructed  []*ReconstructionEvent
	failures       []*ValidationFailureEvent
	configurations []*AuditEvent
}

func (h *recordingAuditHandler) OnSharesGenerated(event *ShareGenerationEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.generated = append(h.generated, event)
}

func (h *recordingAuditHandler) OnSecretReconstructed(event *ReconstructionEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reconstructed = append(h.reconstructed, event)
}

func (h *recordingAuditHandler) OnValidationFailure(event *ValidationFailureEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failures = append(h.failures, event)
}

func (h *recordingAuditHandler) OnConfigurationChange(event *AuditEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.configurations = append(h.configurations, event)
}
