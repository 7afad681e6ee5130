package services

import (
	"errors"
	"time"

	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/domain/model/parcel"
)

const (
	// TenderCarrier is the partner network receiving tenders.
	TenderCarrier = "EXTERNAL_PARTNER_NETWORK"

	// TenderSubmitted is the status of a freshly built manifest.
	TenderSubmitted = "TENDER_SUBMITTED"

	// DeclaredValue is attached to every tendered parcel.
	DeclaredValue = "$100"
)

// ErrNothingToTender is returned when every parcel already holds a truck.
var ErrNothingToTender = errors.New("no unassigned parcels to tender")

// TenderItem is one parcel offered to the partner network.
type TenderItem struct {
	ParcelID      string
	Weight        float64
	Destination   kernel.Location
	DeclaredValue string
}

// TenderManifest hands unassigned parcels over to an external carrier.
type TenderManifest struct {
	ManifestID  string
	CreatedAt   time.Time
	Carrier     string
	Items       []TenderItem
	TotalWeight float64
	Status      string
}

// BuildTender builds a manifest for the unassigned parcels among parcels.
// The manifest id is "MF-" followed by six upper-case hex digits.
func BuildTender(parcels []*parcel.Parcel, at time.Time) (TenderManifest, error) {
	manifest := TenderManifest{
		ManifestID: "MF-" + kernel.NewUUID().Short(6),
		CreatedAt:  at,
		Carrier:    TenderCarrier,
		Status:     TenderSubmitted,
	}

	for _, p := range parcels {
		if p.IsAssigned() {
			continue
		}
		manifest.Items = append(manifest.Items, TenderItem{
			ParcelID:      p.ID(),
			Weight:        p.Weight(),
			Destination:   p.Destination(),
			DeclaredValue: DeclaredValue,
		})
		manifest.TotalWeight += p.Weight()
	}

	if len(manifest.Items) == 0 {
		return TenderManifest{}, ErrNothingToTender
	}
	return manifest, nil
}
