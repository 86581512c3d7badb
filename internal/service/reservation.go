package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/domain"
	"rentdesk/internal/interval"
	"rentdesk/internal/logger"
	"rentdesk/internal/pricing"
	"rentdesk/internal/repository"
)

type reservationService struct {
	reservationRepo repository.ReservationRepository
	assetRepo       repository.AssetRepository
	customerRepo    repository.CustomerRepository
	availability    AvailabilityService
	emailSvc        EmailService
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	assetRepo repository.AssetRepository,
	customerRepo repository.CustomerRepository,
	availability AvailabilityService,
	emailSvc EmailService,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		assetRepo:       assetRepo,
		customerRepo:    customerRepo,
		availability:    availability,
		emailSvc:        emailSvc,
	}
}

func (s *reservationService) Quote(ctx context.Context, assetID int32, start, end time.Time) (pricing.Quote, error) {
	if err := interval.Validate(start, end); err != nil {
		return pricing.Quote{}, err
	}
	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return pricing.Quote{}, err
	}
	days := interval.DurationInclusiveDays(start, end)
	return pricing.Compute(days, asset.DailyRateCents, asset.WeeklyRateCents, asset.MonthlyRateCents)
}

func (s *reservationService) CreateBooking(ctx context.Context, req BookingRequest) (*domain.Reservation, error) {
	if err := interval.Validate(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	asset, err := s.assetRepo.GetByID(ctx, req.AssetID)
	if err != nil {
		return nil, err
	}

	days := interval.DurationInclusiveDays(req.StartDate, req.EndDate)
	quote, err := pricing.Compute(days, asset.DailyRateCents, asset.WeeklyRateCents, asset.MonthlyRateCents)
	if err != nil {
		return nil, err
	}

	// Advisory pre-check so the caller gets the blocking reservations in the
	// common case. The insert below re-checks authoritatively.
	report, err := s.availability.CheckOverlap(ctx, req.AssetID, req.StartDate, req.EndDate, 0)
	if err != nil {
		return nil, err
	}
	if report.Conflict {
		return nil, conflictError(report)
	}

	res := &domain.Reservation{
		Code:               newReservationCode(),
		AssetID:            req.AssetID,
		CustomerID:         req.CustomerID,
		StartDate:          interval.Normalize(req.StartDate),
		EndDate:            interval.Normalize(req.EndDate),
		Status:             domain.ReservationStatusPending,
		Origin:             domain.ReservationOriginManual,
		TotalPriceCents:    quote.TotalCents,
		ComputedPriceCents: quote.TotalCents,
		PriceBreakdown:     quote.Breakdown,
		Notes:              req.Notes,
	}
	if req.PriceOverrideCents != nil {
		if *req.PriceOverrideCents < 0 {
			return nil, apperrors.Validation("price override must not be negative")
		}
		res.TotalPriceCents = *req.PriceOverrideCents
		res.PriceOverridden = true
	}

	if err := s.reservationRepo.CreateBooked(ctx, res); err != nil {
		return nil, err
	}

	s.notify(ctx, res, asset.Name, "confirmation")
	return res, nil
}

func (s *reservationService) UpdateBooking(ctx context.Context, code string, start, end time.Time, notes string) (*domain.Reservation, error) {
	if err := interval.Validate(start, end); err != nil {
		return nil, err
	}

	res, err := s.reservationRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !res.Status.Occupies() {
		return nil, apperrors.Validation("cannot reschedule a cancelled reservation")
	}

	// Exclude the reservation itself so an unchanged interval never
	// self-conflicts.
	report, err := s.availability.CheckOverlap(ctx, res.AssetID, start, end, res.ID)
	if err != nil {
		return nil, err
	}
	if report.Conflict {
		return nil, conflictError(report)
	}

	asset, err := s.assetRepo.GetByID(ctx, res.AssetID)
	if err != nil {
		return nil, err
	}
	days := interval.DurationInclusiveDays(start, end)
	quote, err := pricing.Compute(days, asset.DailyRateCents, asset.WeeklyRateCents, asset.MonthlyRateCents)
	if err != nil {
		return nil, err
	}

	res.StartDate = interval.Normalize(start)
	res.EndDate = interval.Normalize(end)
	res.ComputedPriceCents = quote.TotalCents
	res.PriceBreakdown = quote.Breakdown
	if !res.PriceOverridden {
		res.TotalPriceCents = quote.TotalCents
	}
	if notes != "" {
		res.Notes = notes
	}

	if err := s.reservationRepo.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *reservationService) TransitionStatus(ctx context.Context, code string, next domain.ReservationStatus) (*domain.Reservation, error) {
	if !next.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("unknown reservation status %q", next))
	}

	res, err := s.reservationRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !res.Status.CanTransition(next) {
		return nil, apperrors.Validation(fmt.Sprintf("cannot transition reservation from %s to %s", res.Status, next))
	}

	if err := s.reservationRepo.UpdateStatus(ctx, res.ID, next); err != nil {
		return nil, err
	}
	res.Status = next

	// Asset state follows the reservation lifecycle: checked out means the
	// asset is physically with the customer.
	switch next {
	case domain.ReservationStatusCheckedOut:
		if err := s.assetRepo.UpdateStatus(ctx, res.AssetID, domain.AssetStatusRented); err != nil {
			logger.Error("failed to mark asset rented", "asset_id", res.AssetID, "error", err)
		}
	case domain.ReservationStatusDelivered:
		if err := s.assetRepo.UpdateStatus(ctx, res.AssetID, domain.AssetStatusAvailable); err != nil {
			logger.Error("failed to mark asset available", "asset_id", res.AssetID, "error", err)
		}
	}

	return res, nil
}

func (s *reservationService) CancelBooking(ctx context.Context, code string) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !res.Status.CanTransition(domain.ReservationStatusCancelled) {
		return nil, apperrors.Validation(fmt.Sprintf("cannot cancel a %s reservation", strings.ToLower(string(res.Status))))
	}

	if err := s.reservationRepo.UpdateStatus(ctx, res.ID, domain.ReservationStatusCancelled); err != nil {
		return nil, err
	}
	res.Status = domain.ReservationStatusCancelled

	asset, err := s.assetRepo.GetByID(ctx, res.AssetID)
	if err == nil {
		s.notify(ctx, res, asset.Name, "cancellation")
	}
	return res, nil
}

func (s *reservationService) OverridePrice(ctx context.Context, code string, totalCents int32) (*domain.Reservation, error) {
	if totalCents < 0 {
		return nil, apperrors.Validation("price must not be negative")
	}

	res, err := s.reservationRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	// The computed total stays on the record for comparison and audit.
	res.TotalPriceCents = totalCents
	res.PriceOverridden = true

	if err := s.reservationRepo.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *reservationService) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	return s.reservationRepo.GetByCode(ctx, code)
}

func (s *reservationService) ListByAsset(ctx context.Context, assetID int32) ([]domain.Reservation, error) {
	return s.reservationRepo.ListByAsset(ctx, assetID)
}

// notify sends a templated message to the booking customer. Delivery is
// best-effort: failures are logged and never roll back the reservation.
func (s *reservationService) notify(ctx context.Context, res *domain.Reservation, assetName, kind string) {
	if s.emailSvc == nil || res.CustomerID == nil {
		return
	}
	customer, err := s.customerRepo.GetByID(ctx, *res.CustomerID)
	if err != nil {
		logger.Warn("skipping notification, customer lookup failed", "customer_id", *res.CustomerID, "error", err)
		return
	}

	switch kind {
	case "confirmation":
		err = s.emailSvc.SendBookingConfirmation(ctx, customer.Email, customer.Name, assetName, res)
	case "cancellation":
		err = s.emailSvc.SendCancellationNotice(ctx, customer.Email, customer.Name, assetName, res)
	}
	if err != nil {
		logger.Error("notification send failed", "reservation", res.Code, "kind", kind, "error", err)
	}
}

func conflictError(report ConflictReport) error {
	ranges := make([]string, 0, len(report.Conflicting))
	for _, c := range report.Conflicting {
		ranges = append(ranges, fmt.Sprintf("%s to %s",
			c.StartDate.Format("2006-01-02"), c.EndDate.Format("2006-01-02")))
	}
	return apperrors.Conflict("requested dates overlap existing reservations", map[string]any{
		"blocking": ranges,
	})
}

func newReservationCode() string {
	return "RSV-" + strings.ToUpper(uuid.NewString()[:8])
}
