package main

import (
	glog "github.com/golang/glog"

	"github.com/canopy-network/canopy/lib/shamir"
)

// logAuditHandler writes audit events to glog. Share values never appear in
// events, so nothing secret is logged.
type logAuditHandler struct{}

func (*logAuditHandler) OnSharesGenerated(event *shamir.ShareGenerationEvent) {
	if !event.Success {
		glog.Errorf("AUDIT %s: split failed over %s (%d-of-%d): %s",
			event.EventID, event.FieldName, event.Threshold, event.TotalShares, event.Error)
		return
	}
	glog.Infof("AUDIT %s: split over %s (%d-of-%d), %d shares in %v",
		event.EventID, event.FieldName, event.Threshold, event.TotalShares, event.SharesGenerated, event.Duration)
}

func (*logAuditHandler) OnSecretReconstructed(event *shamir.ReconstructionEvent) {
	if !event.Success {
		glog.Errorf("AUDIT %s: combine failed over %s with %d shares: %s",
			event.EventID, event.FieldName, event.SharesSupplied, event.Error)
		return
	}
	glog.Infof("AUDIT %s: combined %d of %d shares over %s in %v",
		event.EventID, event.SharesUsed, event.SharesSupplied, event.FieldName, event.Duration)
}

func (*logAuditHandler) OnValidationFailure(event *shamir.ValidationFailureEvent) {
	glog.Warningf("AUDIT %s: %s rejected (%s): %v", event.EventID, event.ValidationType, event.FailureReason, event.InputValues)
}

func (*logAuditHandler) OnConfigurationChange(event *shamir.AuditEvent) {
	glog.V(1).Infof("AUDIT %s: configured %s (%d-of-%d)", event.EventID, event.FieldName, event.Threshold, event.TotalShares)
}
