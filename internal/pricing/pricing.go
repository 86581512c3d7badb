// Package pricing implements the tiered rate calculator. Rates prefer the
// largest whole unit: months (30-day blocks) before weeks (7-day blocks)
// before days. Tiers without a configured rate are skipped entirely; there is
// no proration of partial tiers.
package pricing

import (
	"fmt"
	"strings"

	"rentdesk/internal/apperrors"
)

const (
	daysPerWeek  = 7
	daysPerMonth = 30
)

// Quote is the computed price for a duration plus the unit decomposition
// behind it. The breakdown string is shown to operators and kept for auditing
// manually overridden prices.
type Quote struct {
	TotalCents int32  `json:"total_cents"`
	Breakdown  string `json:"breakdown"`
	Months     int    `json:"months"`
	Weeks      int    `json:"weeks"`
	Days       int    `json:"days"`
}

// Compute decomposes days greedily into months, weeks and days and prices
// each unit at the asset's rate schedule. weeklyCents and monthlyCents are
// nil when the asset has no rate for that tier.
func Compute(days int, dailyCents int32, weeklyCents, monthlyCents *int32) (Quote, error) {
	if days <= 0 {
		return Quote{}, apperrors.Validation("duration must be at least 1 day")
	}
	if dailyCents < 0 {
		return Quote{}, apperrors.Validation("daily rate must not be negative")
	}

	var q Quote
	remaining := days

	if monthlyCents != nil && remaining >= daysPerMonth {
		q.Months = remaining / daysPerMonth
		remaining = remaining % daysPerMonth
		q.TotalCents += int32(q.Months) * *monthlyCents
	}

	if weeklyCents != nil && remaining >= daysPerWeek {
		q.Weeks = remaining / daysPerWeek
		remaining = remaining % daysPerWeek
		q.TotalCents += int32(q.Weeks) * *weeklyCents
	}

	q.Days = remaining
	q.TotalCents += int32(q.Days) * dailyCents

	q.Breakdown = formatBreakdown(q.Months, q.Weeks, q.Days)
	return q, nil
}

func formatBreakdown(months, weeks, days int) string {
	var parts []string
	if months > 0 {
		parts = append(parts, pluralize(months, "month"))
	}
	if weeks > 0 {
		parts = append(parts, pluralize(weeks, "week"))
	}
	if days > 0 {
		parts = append(parts, pluralize(days, "day"))
	}
	return strings.Join(parts, " + ")
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
