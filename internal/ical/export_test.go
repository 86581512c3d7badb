package ical

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentdesk/internal/domain"
)

func TestBuildAssetCalendar(t *testing.T) {
	asset := &domain.Asset{ID: 1, Name: "Van 12", Kind: domain.AssetKindVehicle}
	uid := "ext-9@channel"

	reservations := []domain.Reservation{
		{
			Code:      "RES-1",
			Status:    domain.ReservationStatusConfirmed,
			StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			Code:        "RES-2",
			Status:      domain.ReservationStatusDelivered,
			ExternalUID: &uid,
			StartDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			Code:      "RES-3",
			Status:    domain.ReservationStatusCancelled,
			StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
	}

	out := BuildAssetCalendar(asset, reservations)

	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"), "cancelled reservations must not be exported")
	assert.Contains(t, out, "reservation-RES-1@rentdesk")
	assert.Contains(t, out, "ext-9@channel")
	assert.NotContains(t, out, "RES-3")
	assert.Contains(t, out, "METHOD:PUBLISH")
}
