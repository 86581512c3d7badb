package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/domain"
	"rentdesk/internal/service"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCheckOverlap_NoConflict(t *testing.T) {
	resRepo := new(MockReservationRepo)
	svc := service.NewAvailabilityService(resRepo)

	start := day(2026, 3, 10)
	end := day(2026, 3, 15)
	resRepo.On("ListOverlapping", mock.Anything, int32(7), start, end, int32(0)).
		Return([]domain.Reservation{}, nil)

	report, err := svc.CheckOverlap(context.Background(), 7, start, end, 0)

	require.NoError(t, err)
	assert.False(t, report.Conflict)
	assert.Empty(t, report.Conflicting)
	resRepo.AssertExpectations(t)
}

func TestCheckOverlap_ReturnsBlockingReservations(t *testing.T) {
	resRepo := new(MockReservationRepo)
	svc := service.NewAvailabilityService(resRepo)

	start := day(2026, 3, 10)
	end := day(2026, 3, 15)
	blocking := []domain.Reservation{
		{ID: 41, Code: "RSV-AAAA1111", AssetID: 7, StartDate: day(2026, 3, 14), EndDate: day(2026, 3, 20), Status: domain.ReservationStatusConfirmed},
	}
	resRepo.On("ListOverlapping", mock.Anything, int32(7), start, end, int32(0)).
		Return(blocking, nil)

	report, err := svc.CheckOverlap(context.Background(), 7, start, end, 0)

	require.NoError(t, err)
	assert.True(t, report.Conflict)
	require.Len(t, report.Conflicting, 1)
	assert.Equal(t, "RSV-AAAA1111", report.Conflicting[0].Code)
}

func TestCheckOverlap_PassesExclusionThrough(t *testing.T) {
	resRepo := new(MockReservationRepo)
	svc := service.NewAvailabilityService(resRepo)

	start := day(2026, 3, 10)
	end := day(2026, 3, 15)
	resRepo.On("ListOverlapping", mock.Anything, int32(7), start, end, int32(41)).
		Return([]domain.Reservation{}, nil)

	report, err := svc.CheckOverlap(context.Background(), 7, start, end, 41)

	require.NoError(t, err)
	assert.False(t, report.Conflict)
	resRepo.AssertExpectations(t)
}

func TestCheckOverlap_NormalizesTimeOfDay(t *testing.T) {
	resRepo := new(MockReservationRepo)
	svc := service.NewAvailabilityService(resRepo)

	resRepo.On("ListOverlapping", mock.Anything, int32(7), day(2026, 3, 10), day(2026, 3, 15), int32(0)).
		Return([]domain.Reservation{}, nil)

	_, err := svc.CheckOverlap(context.Background(), 7,
		time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
		time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), 0)

	require.NoError(t, err)
	resRepo.AssertExpectations(t)
}

func TestCheckOverlap_InvertedIntervalRejected(t *testing.T) {
	resRepo := new(MockReservationRepo)
	svc := service.NewAvailabilityService(resRepo)

	_, err := svc.CheckOverlap(context.Background(), 7, day(2026, 3, 15), day(2026, 3, 10), 0)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
	resRepo.AssertNotCalled(t, "ListOverlapping")
}
