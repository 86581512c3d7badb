package service

import (
	"context"
	"time"

	"rentdesk/internal/domain"
	"rentdesk/internal/ical"
	"rentdesk/internal/pricing"
)

// ConflictReport is the outcome of an availability check. Conflicting holds
// every blocking reservation so callers can show why the dates are taken.
type ConflictReport struct {
	Conflict    bool                 `json:"conflict"`
	Conflicting []domain.Reservation `json:"conflicting"`
}

// SyncReport summarizes one reconciliation run against an asset's feed.
type SyncReport struct {
	Imported          int `json:"imported"`
	Seen              int `json:"seen"`
	Skipped           int `json:"skipped"`
	ExternalConflicts int `json:"external_conflicts"`
}

// BookingRequest carries the fields of a manual booking submission.
type BookingRequest struct {
	AssetID            int32
	CustomerID         *int32
	StartDate          time.Time
	EndDate            time.Time
	Notes              string
	PriceOverrideCents *int32
}

type AvailabilityService interface {
	// CheckOverlap reports whether the candidate interval collides with an
	// occupying reservation of the asset. excludeID removes one reservation
	// from the check, so edits don't conflict with themselves. The result is
	// advisory: the authoritative guard is the insert-time check in the
	// store.
	CheckOverlap(ctx context.Context, assetID int32, start, end time.Time, excludeID int32) (ConflictReport, error)
}

type ReservationService interface {
	Quote(ctx context.Context, assetID int32, start, end time.Time) (pricing.Quote, error)
	CreateBooking(ctx context.Context, req BookingRequest) (*domain.Reservation, error)
	UpdateBooking(ctx context.Context, code string, start, end time.Time, notes string) (*domain.Reservation, error)
	TransitionStatus(ctx context.Context, code string, next domain.ReservationStatus) (*domain.Reservation, error)
	CancelBooking(ctx context.Context, code string) (*domain.Reservation, error)
	OverridePrice(ctx context.Context, code string, totalCents int32) (*domain.Reservation, error)
	GetByCode(ctx context.Context, code string) (*domain.Reservation, error)
	ListByAsset(ctx context.Context, assetID int32) ([]domain.Reservation, error)
}

type SyncService interface {
	// SyncAsset reconciles one asset's external feed into the store.
	SyncAsset(ctx context.Context, assetID int32) (SyncReport, error)
	// PreviewFeed fetches and parses a feed without persisting anything.
	PreviewFeed(ctx context.Context, feedURL string) (ical.Result, error)
}

type EmailService interface {
	SendBookingConfirmation(ctx context.Context, toEmail, toName, assetName string, res *domain.Reservation) error
	SendCancellationNotice(ctx context.Context, toEmail, toName, assetName string, res *domain.Reservation) error
	SendReturnReminder(ctx context.Context, toEmail, toName, assetName string, res *domain.Reservation) error
}
