package ical

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"rentdesk/internal/domain"
)

// BuildAssetCalendar renders an asset's occupying reservations as an ICS
// document, so external parties (channel managers, the owner's own calendar)
// can subscribe to this system's bookings. Cancelled reservations are
// omitted. DTEND is exclusive in the calendar format, so the inclusive end
// date is advanced by one day.
func BuildAssetCalendar(asset *domain.Asset, reservations []domain.Reservation) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//rentdesk//reservations//EN")

	for _, r := range reservations {
		if !r.Status.Occupies() {
			continue
		}

		uid := fmt.Sprintf("reservation-%s@rentdesk", r.Code)
		if r.ExternalUID != nil && *r.ExternalUID != "" {
			uid = *r.ExternalUID
		}

		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(time.Now().UTC())
		ev.SetAllDayStartAt(r.StartDate)
		ev.SetAllDayEndAt(r.EndDate.AddDate(0, 0, 1))
		ev.SetSummary(fmt.Sprintf("Reserved: %s", asset.Name))
		ev.SetDescription(fmt.Sprintf("Reservation %s (%s)", r.Code, r.Status))
	}

	return cal.Serialize()
}
