package domain

import "time"

type AssetKind string

const (
	AssetKindVehicle AssetKind = "VEHICLE"
	AssetKindUnit    AssetKind = "UNIT"
)

type AssetStatus string

const (
	AssetStatusAvailable   AssetStatus = "AVAILABLE"
	AssetStatusRented      AssetStatus = "RENTED"
	AssetStatusMaintenance AssetStatus = "MAINTENANCE"
)

// Asset is a rentable thing: a vehicle or a furnished unit. The rate schedule
// is a daily rate plus optional weekly and monthly tiers; absent tiers are nil
// and simply skipped by the pricing calculator.
type Asset struct {
	ID               int32       `json:"id"`
	Kind             AssetKind   `json:"kind"`
	Name             string      `json:"name"`
	Identifier       string      `json:"identifier"` // plate for vehicles, unit number for units
	DailyRateCents   int32       `json:"daily_rate_cents"`
	WeeklyRateCents  *int32      `json:"weekly_rate_cents,omitempty"`
	MonthlyRateCents *int32      `json:"monthly_rate_cents,omitempty"`
	Status           AssetStatus `json:"status"`
	FeedURL          string      `json:"feed_url,omitempty"`
	LastSyncedAt     *time.Time  `json:"last_synced_at,omitempty"`
	CreatedOn        time.Time   `json:"created_on"`
	UpdatedOn        time.Time   `json:"updated_on"`
}

// HasFeed reports whether the asset has an external calendar configured.
func (a *Asset) HasFeed() bool {
	return a.FeedURL != ""
}
