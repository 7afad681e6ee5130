package queries

import (
	"context"
	"time"

	"fleetdispatch/internal/core/domain/services"
	"fleetdispatch/internal/core/ports"
)

// GetTenderManifestQueryHandler offers every unassigned parcel to the
// partner network. It returns services.ErrNothingToTender when no parcel is
// pending. Tendering does not assign parcels.
type GetTenderManifestQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	now        func() time.Time
}

func NewGetTenderManifestQueryHandler(uowFactory ports.UnitOfWorkFactory) GetTenderManifestQueryHandler {
	return GetTenderManifestQueryHandler{uowFactory: uowFactory, now: time.Now}
}

func (h GetTenderManifestQueryHandler) Handle(ctx context.Context, query FleetQuery) (services.TenderManifest, error) {
	if err := query.Validate(); err != nil {
		return services.TenderManifest{}, err
	}
	view, err := readFleet(ctx, h.uowFactory)
	if err != nil {
		return services.TenderManifest{}, err
	}
	return services.BuildTender(view.parcels, h.now().UTC())
}
