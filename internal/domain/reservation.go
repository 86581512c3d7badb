package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "PENDING"
	ReservationStatusConfirmed  ReservationStatus = "CONFIRMED"
	ReservationStatusCheckedOut ReservationStatus = "CHECKED_OUT"
	ReservationStatusDelivered  ReservationStatus = "DELIVERED"
	ReservationStatusCancelled  ReservationStatus = "CANCELLED"
)

type ReservationOrigin string

const (
	ReservationOriginManual   ReservationOrigin = "MANUAL"
	ReservationOriginImported ReservationOrigin = "IMPORTED"
)

// transitions is the closed state machine for reservation lifecycles:
// PENDING → CONFIRMED → CHECKED_OUT → DELIVERED, with cancellation allowed
// from any pre-delivered state. DELIVERED and CANCELLED are terminal.
var transitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:    {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed:  {ReservationStatusCheckedOut, ReservationStatusCancelled},
	ReservationStatusCheckedOut: {ReservationStatusDelivered, ReservationStatusCancelled},
	ReservationStatusDelivered:  {},
	ReservationStatusCancelled:  {},
}

// Valid reports whether s is one of the known reservation statuses.
func (s ReservationStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether the state machine allows moving to next.
func (s ReservationStatus) CanTransition(next ReservationStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Occupies reports whether a reservation in this status blocks the asset's
// availability. Only cancellation frees the interval; delivered reservations
// still occupy their historical window.
func (s ReservationStatus) Occupies() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed,
		ReservationStatusCheckedOut, ReservationStatusDelivered:
		return true
	}
	return false
}

// Reservation holds one booking of one asset by one customer over an
// inclusive calendar-day interval [StartDate, EndDate]. Imported reservations
// carry the external feed UID used for dedup; (AssetID, ExternalUID) is
// unique in the store.
type Reservation struct {
	ID                 int32             `json:"id"`
	Code               string            `json:"code"`
	AssetID            int32             `json:"asset_id"`
	CustomerID         *int32            `json:"customer_id,omitempty"`
	StartDate          time.Time         `json:"start_date"`
	EndDate            time.Time         `json:"end_date"`
	Status             ReservationStatus `json:"status"`
	Origin             ReservationOrigin `json:"origin"`
	ExternalUID        *string           `json:"external_uid,omitempty"`
	TotalPriceCents    int32             `json:"total_price_cents"`
	ComputedPriceCents int32             `json:"computed_price_cents"`
	PriceOverridden    bool              `json:"price_overridden"`
	PriceBreakdown     string            `json:"price_breakdown,omitempty"`
	Notes              string            `json:"notes,omitempty"`
	CreatedOn          time.Time         `json:"created_on"`
	UpdatedOn          time.Time         `json:"updated_on"`
}
