package http

import (
	"time"

	"fleetdispatch/internal/core/application/usecases/commands"
	"fleetdispatch/internal/core/application/usecases/queries"
	"fleetdispatch/internal/core/domain/model/assignment"
	"fleetdispatch/internal/core/domain/model/audit"
	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/domain/model/network"
	"fleetdispatch/internal/core/domain/model/parcel"
	"fleetdispatch/internal/core/domain/model/route"
	"fleetdispatch/internal/core/domain/model/truck"
	"fleetdispatch/internal/core/domain/services"
)

// Requests.

type proposalRequest struct {
	ParcelID string `json:"parcelID"`
	TruckID  string `json:"truckID"`
	Priority string `json:"priority"`
}

type executeBatchRequest struct {
	Assignments []proposalRequest `json:"assignments"`
}

type assignParcelRequest struct {
	ParcelID string `json:"parcelID"`
	TruckID  string `json:"truckID"`
}

type roadStatusRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	IsClosed bool   `json:"isClosed"`
}

type createParcelRequest struct {
	ParcelID    string  `json:"parcelID"`
	Destination string  `json:"destination"`
	Weight      float64 `json:"weight"`
}

type createTruckRequest struct {
	TruckID     string  `json:"truckID"`
	RouteID     string  `json:"routeID"`
	MaxCapacity float64 `json:"maxCapacity"`
}

type createRouteRequest struct {
	RouteID       string   `json:"routeID"`
	Stops         []string `json:"stops"`
	CapacityLimit float64  `json:"capacityLimit"`
}

// Responses.

type errorResponse struct {
	Error      string `json:"error"`
	Code       string `json:"code,omitempty"`
	WorkflowID string `json:"workflowId,omitempty"`
}

type batchResultsResponse struct {
	SuccessCount int      `json:"successCount"`
	FailureCount int      `json:"failureCount"`
	Errors       []string `json:"errors"`
}

type batchResponse struct {
	Success bool                 `json:"success"`
	BatchID string               `json:"batchId"`
	Results batchResultsResponse `json:"results"`
}

type batchFailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    int    `json:"code"`
}

type parcelResponse struct {
	ParcelID        string  `json:"parcelID"`
	Destination     string  `json:"destination"`
	Weight          float64 `json:"weight"`
	AssignedTruckID *string `json:"assignedTruckID"`
}

type truckResponse struct {
	TruckID     string  `json:"truckID"`
	RouteID     *string `json:"routeID"`
	MaxCapacity float64 `json:"maxCapacity"`
	Status      string  `json:"status"`
}

type routeResponse struct {
	RouteID       string   `json:"routeID"`
	Stops         []string `json:"stops"`
	CapacityLimit float64  `json:"capacityLimit"`
	Kind          string   `json:"kind"`
}

type assignParcelResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	WorkflowID string `json:"workflowId"`
	ParcelID   string `json:"parcelID"`
	TruckID    string `json:"truckID"`
	RouteID    string `json:"routeID"`
}

type pathResponse struct {
	Path      []string `json:"path"`
	TotalCost float64  `json:"totalCost"`
	Currency  string   `json:"currency"`
	Algorithm string   `json:"algorithm"`
	FuelRate  float64  `json:"fuelRate"`
}

type segmentResponse struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Distance float64 `json:"distance"`
	Toll     float64 `json:"toll"`
}

type roadUpdateResponse struct {
	Success bool            `json:"success"`
	Status  string          `json:"status"`
	Edge    segmentResponse `json:"edge"`
}

type impactResponse struct {
	TruckID        string   `json:"truckID"`
	CurrentRoute   string   `json:"currentRoute"`
	Impact         string   `json:"impact"`
	ProposedAction string   `json:"proposedAction"`
	AlternatePath  []string `json:"alternatePath"`
	NewCost        *float64 `json:"newCost"`
}

type roadStatusResponse struct {
	RoadUpdate     roadUpdateResponse `json:"roadUpdate"`
	ImpactAnalysis []impactResponse   `json:"impactAnalysis"`
}

type clusterProposalResponse struct {
	Type          string   `json:"type"`
	Destination   string   `json:"destination"`
	ParcelCount   int      `json:"parcelCount"`
	ParcelIDs     []string `json:"parcelIds"`
	TotalWeight   float64  `json:"totalWeight"`
	ProposedTruck string   `json:"proposedTruck,omitempty"`
	EstimatedCost *float64 `json:"estimatedCost,omitempty"`
	Status        string   `json:"status,omitempty"`
	Reason        string   `json:"reason,omitempty"`
}

type proposalsResponse struct {
	Timestamp           time.Time                 `json:"timestamp"`
	PendingParcelsCount int                       `json:"pendingParcelsCount"`
	Proposals           []clusterProposalResponse `json:"proposals"`
}

type stepResponse struct {
	StepName  string    `json:"stepName"`
	Status    string    `json:"status"`
	Reason    *string   `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

type replayEntryResponse struct {
	Timestamp time.Time         `json:"timestamp"`
	Action    string            `json:"action"`
	Input     map[string]string `json:"input"`
	Decision  string            `json:"decision"`
	Steps     []stepResponse    `json:"steps"`
}

type replayResponse struct {
	BatchID    string                `json:"batchId"`
	ReplayData []replayEntryResponse `json:"replayData"`
}

type tenderItemResponse struct {
	ID            string  `json:"id"`
	Weight        float64 `json:"weight"`
	Destination   string  `json:"destination"`
	DeclaredValue string  `json:"declaredValue"`
}

type tenderResponse struct {
	ManifestID  string               `json:"manifestId"`
	Timestamp   time.Time            `json:"timestamp"`
	Carrier     string               `json:"carrier"`
	Parcels     []tenderItemResponse `json:"parcels"`
	TotalWeight float64              `json:"totalWeight"`
	Status      string               `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type workflowResponse struct {
	WorkflowID  string         `json:"workflowId"`
	Type        string         `json:"type"`
	Source      string         `json:"source"`
	BatchID     string         `json:"batchId,omitempty"`
	ParcelID    string         `json:"parcelID,omitempty"`
	TruckID     string         `json:"truckID,omitempty"`
	Steps       []stepResponse `json:"steps"`
	FinalStatus string         `json:"finalStatus"`
	Timestamp   time.Time      `json:"timestamp"`
}

type alertResponse struct {
	AlertID   string    `json:"alertID"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	ParcelID  *string   `json:"parcelID"`
	TruckID   *string   `json:"truckID"`
	Timestamp time.Time `json:"timestamp"`
}

type statusResponse struct {
	TotalRoutes       int `json:"totalRoutes"`
	TotalTrucks       int `json:"totalTrucks"`
	ActiveTrucks      int `json:"activeTrucks"`
	TotalParcels      int `json:"totalParcels"`
	UnassignedParcels int `json:"unassignedParcels"`
	ActiveAlerts      int `json:"activeAlerts"`
	Workflows         int `json:"workflows"`
	Locations         int `json:"locations"`
	RoadSegments      int `json:"roadSegments"`
	ClosedSegments    int `json:"closedSegments"`
}

// Mapping.

func toProposals(items []proposalRequest) []assignment.Proposal {
	proposals := make([]assignment.Proposal, 0, len(items))
	for _, item := range items {
		proposals = append(proposals, assignment.Proposal{
			ParcelID: item.ParcelID,
			TruckID:  item.TruckID,
			Priority: assignment.ParsePriority(item.Priority),
		})
	}
	return proposals
}

func toBatchResponse(result assignment.BatchResult) batchResponse {
	problems := result.Errors
	if problems == nil {
		problems = []string{}
	}
	return batchResponse{
		Success: true,
		BatchID: result.BatchID.String(),
		Results: batchResultsResponse{
			SuccessCount: result.SuccessCount,
			FailureCount: result.FailureCount,
			Errors:       problems,
		},
	}
}

func toParcelResponse(p *parcel.Parcel) parcelResponse {
	response := parcelResponse{
		ParcelID:    p.ID(),
		Destination: p.Destination().Name(),
		Weight:      p.Weight(),
	}
	if truckID, ok := p.AssignedTruck(); ok {
		response.AssignedTruckID = &truckID
	}
	return response
}

func toTruckResponse(t *truck.Truck) truckResponse {
	response := truckResponse{
		TruckID:     t.ID(),
		MaxCapacity: t.MaxCapacity(),
		Status:      t.Status().String(),
	}
	if routeID, ok := t.RouteID(); ok {
		response.RouteID = &routeID
	}
	return response
}

func toRouteResponse(r *route.Route) routeResponse {
	return routeResponse{
		RouteID:       r.ID(),
		Stops:         names(r.Stops()),
		CapacityLimit: r.CapacityLimit(),
		Kind:          r.Kind().String(),
	}
}

func toAssignParcelResponse(result commands.AssignmentResult) assignParcelResponse {
	return assignParcelResponse{
		Success:    true,
		Message:    result.Message,
		WorkflowID: result.WorkflowID.String(),
		ParcelID:   result.ParcelID,
		TruckID:    result.TruckID,
		RouteID:    result.RouteID,
	}
}

func toPathResponse(path services.Path) pathResponse {
	return pathResponse{
		Path:      names(path.Nodes),
		TotalCost: path.TotalCost,
		Currency:  path.Currency,
		Algorithm: path.Algorithm,
		FuelRate:  path.FuelRate,
	}
}

func toSegmentResponse(segment network.Segment) segmentResponse {
	return segmentResponse{
		From:     segment.From().Name(),
		To:       segment.To().Name(),
		Distance: segment.Distance(),
		Toll:     segment.Toll(),
	}
}

func toRoadStatusResponse(result commands.RoadToggleResult) roadStatusResponse {
	impacts := make([]impactResponse, 0, len(result.Impacts))
	for _, impact := range result.Impacts {
		impacts = append(impacts, impactResponse{
			TruckID:        impact.TruckID,
			CurrentRoute:   impact.RouteID,
			Impact:         impact.Impact,
			ProposedAction: string(impact.Action),
			AlternatePath:  names(impact.AlternatePath),
			NewCost:        impact.NewCost,
		})
	}
	return roadStatusResponse{
		RoadUpdate: roadUpdateResponse{
			Success: true,
			Status:  result.Status,
			Edge:    toSegmentResponse(result.Segment),
		},
		ImpactAnalysis: impacts,
	}
}

func toProposalsResponse(report services.ProposalReport, at time.Time) proposalsResponse {
	proposals := make([]clusterProposalResponse, 0, len(report.Proposals))
	for _, p := range report.Proposals {
		proposals = append(proposals, clusterProposalResponse{
			Type:          string(p.Type),
			Destination:   p.Destination.Name(),
			ParcelCount:   len(p.ParcelIDs),
			ParcelIDs:     p.ParcelIDs,
			TotalWeight:   p.TotalWeight,
			ProposedTruck: p.TruckID,
			EstimatedCost: p.EstimatedCost,
			Status:        p.Status,
			Reason:        p.Reason,
		})
	}
	return proposalsResponse{
		Timestamp:           at,
		PendingParcelsCount: report.PendingParcels,
		Proposals:           proposals,
	}
}

func toStepResponses(steps []audit.Step) []stepResponse {
	result := make([]stepResponse, 0, len(steps))
	for _, step := range steps {
		result = append(result, stepResponse{
			StepName:  step.Name,
			Status:    string(step.Status),
			Reason:    optional(step.Reason),
			Timestamp: step.Timestamp,
		})
	}
	return result
}

func toReplayResponse(replay queries.BatchReplay) replayResponse {
	entries := make([]replayEntryResponse, 0, len(replay.Entries))
	for _, entry := range replay.Entries {
		entries = append(entries, replayEntryResponse{
			Timestamp: entry.Timestamp,
			Action:    string(entry.Action),
			Input:     entry.Input,
			Decision:  string(entry.Decision),
			Steps:     toStepResponses(entry.Steps),
		})
	}
	return replayResponse{BatchID: replay.BatchID, ReplayData: entries}
}

func toTenderResponse(manifest services.TenderManifest) tenderResponse {
	items := make([]tenderItemResponse, 0, len(manifest.Items))
	for _, item := range manifest.Items {
		items = append(items, tenderItemResponse{
			ID:            item.ParcelID,
			Weight:        item.Weight,
			Destination:   item.Destination.Name(),
			DeclaredValue: item.DeclaredValue,
		})
	}
	return tenderResponse{
		ManifestID:  manifest.ManifestID,
		Timestamp:   manifest.CreatedAt,
		Carrier:     manifest.Carrier,
		Parcels:     items,
		TotalWeight: manifest.TotalWeight,
		Status:      manifest.Status,
	}
}

func toWorkflowResponses(summaries []queries.WorkflowSummary) []workflowResponse {
	result := make([]workflowResponse, 0, len(summaries))
	for _, s := range summaries {
		result = append(result, workflowResponse{
			WorkflowID:  s.WorkflowID,
			Type:        string(s.Type),
			Source:      string(s.Source),
			BatchID:     s.BatchID,
			ParcelID:    s.ParcelID,
			TruckID:     s.TruckID,
			Steps:       toStepResponses(s.Steps),
			FinalStatus: string(s.Status),
			Timestamp:   s.StartedAt,
		})
	}
	return result
}

func toAlertResponses(alerts []audit.Alert) []alertResponse {
	result := make([]alertResponse, 0, len(alerts))
	for _, a := range alerts {
		result = append(result, alertResponse{
			AlertID:   a.ID.String(),
			Severity:  string(a.Severity),
			Message:   a.Message,
			ParcelID:  optional(a.ParcelID),
			TruckID:   optional(a.TruckID),
			Timestamp: a.Timestamp,
		})
	}
	return result
}

func toStatusResponse(status queries.SystemStatus) statusResponse {
	return statusResponse{
		TotalRoutes:       status.TotalRoutes,
		TotalTrucks:       status.TotalTrucks,
		ActiveTrucks:      status.ActiveTrucks,
		TotalParcels:      status.TotalParcels,
		UnassignedParcels: status.UnassignedParcels,
		ActiveAlerts:      status.Alerts,
		Workflows:         status.Workflows,
		Locations:         status.Locations,
		RoadSegments:      status.RoadSegments,
		ClosedSegments:    status.ClosedSegments,
	}
}

func names(locations []kernel.Location) []string {
	result := make([]string, 0, len(locations))
	for _, location := range locations {
		result = append(result, location.Name())
	}
	return result
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
