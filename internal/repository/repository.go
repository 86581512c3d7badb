package repository

import (
	"context"
	"time"

	"rentdesk/internal/domain"
)

type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, id int32) (*domain.Asset, error)
	List(ctx context.Context) ([]domain.Asset, error)
	Update(ctx context.Context, asset *domain.Asset) error
	UpdateStatus(ctx context.Context, id int32, status domain.AssetStatus) error
	// ListWithFeed returns assets with an external calendar URL configured,
	// for the scheduled sync pass.
	ListWithFeed(ctx context.Context) ([]domain.Asset, error)
	SetLastSynced(ctx context.Context, id int32, at time.Time) error
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
}

type ReservationRepository interface {
	// CreateBooked inserts a manual booking with an insert-time overlap
	// guard: the row is only written if no occupying reservation overlaps
	// the interval, making the insert authoritative even when the advisory
	// pre-check raced. Returns a CONFLICT error for the losing racer.
	CreateBooked(ctx context.Context, r *domain.Reservation) error
	// CreateImported inserts a feed-sourced reservation, relying on the
	// (asset_id, external_uid) uniqueness constraint for idempotency.
	// Returns false with no error when the event was already imported.
	CreateImported(ctx context.Context, r *domain.Reservation) (bool, error)
	GetByID(ctx context.Context, id int32) (*domain.Reservation, error)
	GetByCode(ctx context.Context, code string) (*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) error
	UpdateStatus(ctx context.Context, id int32, status domain.ReservationStatus) error
	ListByAsset(ctx context.Context, assetID int32) ([]domain.Reservation, error)
	// ListOverlapping returns the occupying reservations of an asset whose
	// intervals overlap [start, end]. excludeID, when non-zero, removes one
	// reservation from consideration (edit-in-place).
	ListOverlapping(ctx context.Context, assetID int32, start, end time.Time, excludeID int32) ([]domain.Reservation, error)
	// ListEndingOn returns occupying reservations whose end date falls on
	// the given calendar day, for return reminders.
	ListEndingOn(ctx context.Context, day time.Time) ([]domain.Reservation, error)
	// MarkDeliveredPastEnd transitions checked-out reservations whose end
	// date lies before the cutoff to delivered, returning the affected IDs.
	MarkDeliveredPastEnd(ctx context.Context, cutoff time.Time) ([]int32, error)
	Delete(ctx context.Context, id int32) error
}
