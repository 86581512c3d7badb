package service

import (
	"context"
	"sync"
	"time"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/domain"
	"rentdesk/internal/ical"
	"rentdesk/internal/interval"
	"rentdesk/internal/logger"
	"rentdesk/internal/repository"
)

type syncService struct {
	assetRepo       repository.AssetRepository
	reservationRepo repository.ReservationRepository
	availability    AvailabilityService
	fetcher         ical.Fetcher

	mu    sync.Mutex
	locks map[int32]*sync.Mutex
}

func NewSyncService(
	assetRepo repository.AssetRepository,
	reservationRepo repository.ReservationRepository,
	availability AvailabilityService,
	fetcher ical.Fetcher,
) SyncService {
	return &syncService{
		assetRepo:       assetRepo,
		reservationRepo: reservationRepo,
		availability:    availability,
		fetcher:         fetcher,
		locks:           make(map[int32]*sync.Mutex),
	}
}

// assetLock returns the per-asset mutex. Dedup during sync relies on the
// store's uniqueness constraint, not an in-memory lock, but serializing runs
// for the same asset keeps the imported/seen counters meaningful. Entries are
// never released: the map grows with the fleet, one mutex per asset that has
// ever synced, not with traffic.
func (s *syncService) assetLock(assetID int32) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.locks[assetID]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[assetID] = l
	return l
}

func (s *syncService) SyncAsset(ctx context.Context, assetID int32) (SyncReport, error) {
	lock := s.assetLock(assetID)
	lock.Lock()
	defer lock.Unlock()

	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return SyncReport{}, err
	}
	if !asset.HasFeed() {
		return SyncReport{}, apperrors.Configuration("asset has no external calendar URL configured")
	}

	raw, err := s.fetcher.Fetch(ctx, asset.FeedURL)
	if err != nil {
		return SyncReport{}, err
	}

	parsed := ical.Parse(raw)
	if len(parsed.Events) == 0 {
		return SyncReport{}, apperrors.EmptyFeed(asset.FeedURL)
	}

	report := SyncReport{Skipped: parsed.Skipped}

	for _, ev := range parsed.Events {
		start := interval.Normalize(ev.Start)
		end := interval.Normalize(ev.End)
		if end.Before(start) {
			report.Skipped++
			continue
		}

		// External events are checked against manually entered reservations
		// before import; an overlap there is surfaced instead of silently
		// double-booking the asset. Overlaps with previously imported rows
		// are expected (the same event on a later run) and not a conflict.
		check, err := s.availability.CheckOverlap(ctx, assetID, start, end, 0)
		if err != nil {
			return report, err
		}
		if manual := manualConflicts(check.Conflicting, ev.UID); len(manual) > 0 {
			report.ExternalConflicts++
			logger.Warn("feed event conflicts with manual reservation, skipping import",
				"asset_id", assetID, "external_uid", ev.UID, "blocking", manual[0].Code)
			continue
		}

		uid := ev.UID
		res := &domain.Reservation{
			Code:        newReservationCode(),
			AssetID:     assetID,
			StartDate:   start,
			EndDate:     end,
			Status:      domain.ReservationStatusConfirmed,
			Origin:      domain.ReservationOriginImported,
			ExternalUID: &uid,
			Notes:       ev.Summary,
		}

		inserted, err := s.reservationRepo.CreateImported(ctx, res)
		if err != nil {
			return report, err
		}
		if inserted {
			report.Imported++
		} else {
			report.Seen++
		}
	}

	if err := s.assetRepo.SetLastSynced(ctx, assetID, time.Now().UTC()); err != nil {
		logger.Error("failed to record last-synced marker", "asset_id", assetID, "error", err)
	}

	logger.Info("feed sync completed", "asset_id", assetID,
		"imported", report.Imported, "seen", report.Seen,
		"skipped", report.Skipped, "external_conflicts", report.ExternalConflicts)
	return report, nil
}

func (s *syncService) PreviewFeed(ctx context.Context, feedURL string) (ical.Result, error) {
	if feedURL == "" {
		return ical.Result{}, apperrors.Configuration("feed URL is required")
	}
	raw, err := s.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return ical.Result{}, err
	}
	return ical.Parse(raw), nil
}

// manualConflicts filters blocking reservations down to manually entered
// ones, ignoring the event's own previously imported row.
func manualConflicts(conflicting []domain.Reservation, externalUID string) []domain.Reservation {
	var manual []domain.Reservation
	for _, c := range conflicting {
		if c.Origin != domain.ReservationOriginManual {
			continue
		}
		if c.ExternalUID != nil && *c.ExternalUID == externalUID {
			continue
		}
		manual = append(manual, c)
	}
	return manual
}
