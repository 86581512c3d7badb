package service

import (
	"context"
	"time"

	"rentdesk/internal/interval"
	"rentdesk/internal/repository"
)

type availabilityService struct {
	reservationRepo repository.ReservationRepository
}

func NewAvailabilityService(reservationRepo repository.ReservationRepository) AvailabilityService {
	return &availabilityService{reservationRepo: reservationRepo}
}

func (s *availabilityService) CheckOverlap(ctx context.Context, assetID int32, start, end time.Time, excludeID int32) (ConflictReport, error) {
	if err := interval.Validate(start, end); err != nil {
		return ConflictReport{}, err
	}

	overlapping, err := s.reservationRepo.ListOverlapping(ctx,
		assetID, interval.Normalize(start), interval.Normalize(end), excludeID)
	if err != nil {
		return ConflictReport{}, err
	}

	return ConflictReport{
		Conflict:    len(overlapping) > 0,
		Conflicting: overlapping,
	}, nil
}
