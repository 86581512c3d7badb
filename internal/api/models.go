package api

import (
	"time"

	"rentdesk/internal/domain"
	"rentdesk/internal/service"
)

// dateLayout is the wire format for calendar days. Time-of-day is never
// carried on the API; intervals are whole days.
const dateLayout = "2006-01-02"

type AvailabilityRequest struct {
	AssetID              int32  `json:"asset_id" validate:"required,gt=0"`
	StartDate            string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate              string `json:"end_date" validate:"required,datetime=2006-01-02"`
	ExcludeReservationID int32  `json:"exclude_reservation_id,omitempty"`
}

type QuoteRequest struct {
	AssetID   int32  `json:"asset_id" validate:"required,gt=0"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type QuoteResponse struct {
	TotalCents int32  `json:"total_cents"`
	Breakdown  string `json:"breakdown"`
	Days       int    `json:"days"`
}

type CreateReservationRequest struct {
	AssetID            int32  `json:"asset_id" validate:"required,gt=0"`
	CustomerID         *int32 `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	StartDate          string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate            string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Notes              string `json:"notes,omitempty" validate:"max=2000"`
	PriceOverrideCents *int32 `json:"price_override_cents,omitempty" validate:"omitempty,gte=0"`
}

type UpdateReservationRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Notes     string `json:"notes,omitempty" validate:"max=2000"`
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED CHECKED_OUT DELIVERED CANCELLED"`
}

type OverridePriceRequest struct {
	TotalCents int32 `json:"total_cents" validate:"gte=0"`
}

type CreateAssetRequest struct {
	Kind             string `json:"kind" validate:"required,oneof=VEHICLE UNIT"`
	Name             string `json:"name" validate:"required,max=200"`
	Identifier       string `json:"identifier" validate:"max=50"`
	DailyRateCents   int32  `json:"daily_rate_cents" validate:"required,gt=0"`
	WeeklyRateCents  *int32 `json:"weekly_rate_cents,omitempty" validate:"omitempty,gt=0"`
	MonthlyRateCents *int32 `json:"monthly_rate_cents,omitempty" validate:"omitempty,gt=0"`
	FeedURL          string `json:"feed_url,omitempty" validate:"omitempty,url"`
}

type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty" validate:"max=30"`
}

type FeedPreviewRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type FeedPreviewEvent struct {
	Summary   string `json:"summary"`
	UID       string `json:"uid"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type FeedPreviewResponse struct {
	Events  []FeedPreviewEvent `json:"events"`
	Skipped int                `json:"skipped"`
}

type AvailabilityResponse struct {
	Available   bool                 `json:"available"`
	Conflicting []domain.Reservation `json:"conflicting,omitempty"`
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	s, err := time.ParseInLocation(dateLayout, start, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := time.ParseInLocation(dateLayout, end, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return s, e, nil
}

func toAvailabilityResponse(report service.ConflictReport) AvailabilityResponse {
	return AvailabilityResponse{
		Available:   !report.Conflict,
		Conflicting: report.Conflicting,
	}
}
