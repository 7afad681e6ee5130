package audit

import (
	"time"

	"fleetdispatch/internal/core/domain/model/kernel"
)

// Severity grades an alert.
type Severity string

const (
	// SL1 flags uniqueness and route mismatch violations.
	SL1 Severity = "SL-1"
	// SL2 flags capacity violations.
	SL2 Severity = "SL-2"
	// SL3 flags structural problems: missing records or routes.
	SL3 Severity = "SL-3"
)

// Alert is an immutable notice about rejected work.
type Alert struct {
	ID        kernel.UUID
	Severity  Severity
	Message   string
	ParcelID  string
	TruckID   string
	Timestamp time.Time
}

// NewAlert stamps a new alert with a fresh id. parcelID and truckID may be empty.
func NewAlert(severity Severity, message, parcelID, truckID string, at time.Time) Alert {
	return Alert{
		ID:        kernel.NewUUID(),
		Severity:  severity,
		Message:   message,
		ParcelID:  parcelID,
		TruckID:   truckID,
		Timestamp: at,
	}
}
