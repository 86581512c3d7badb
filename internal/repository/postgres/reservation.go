package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/domain"
	"rentdesk/internal/repository"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, code, asset_id, customer_id, start_date, end_date, status, origin, external_uid, total_price_cents, computed_price_cents, price_overridden, price_breakdown, notes, created_on, updated_on`

// Postgres error codes for duplicate keys and exclusion constraints.
const (
	pqUniqueViolation    = "23505"
	pqExclusionViolation = "23P01"
)

func (r *reservationRepository) CreateBooked(ctx context.Context, res *domain.Reservation) error {
	// The WHERE NOT EXISTS clause makes this insert the authoritative
	// overlap check: two racing bookings for the same interval cannot both
	// commit, regardless of what the advisory pre-check saw.
	query := `
		INSERT INTO reservations
		(code, asset_id, customer_id, start_date, end_date, status, origin, external_uid, total_price_cents, computed_price_cents, price_overridden, price_breakdown, notes, created_on, updated_on)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14
		WHERE NOT EXISTS (
			SELECT 1 FROM reservations
			WHERE asset_id = $2
			  AND status <> $15
			  AND start_date <= $5
			  AND end_date >= $4
		)
		RETURNING id, created_on, updated_on`
	err := r.db.QueryRowContext(ctx, query,
		res.Code, res.AssetID, res.CustomerID, res.StartDate, res.EndDate,
		res.Status, res.Origin, res.ExternalUID,
		res.TotalPriceCents, res.ComputedPriceCents, res.PriceOverridden, res.PriceBreakdown,
		res.Notes, time.Now(), domain.ReservationStatusCancelled,
	).Scan(&res.ID, &res.CreatedOn, &res.UpdatedOn)

	if errors.Is(err, sql.ErrNoRows) || isConstraintViolation(err) {
		return apperrors.Conflict("asset is no longer available for the requested dates", map[string]any{
			"asset_id": res.AssetID,
		})
	}
	return err
}

func (r *reservationRepository) CreateImported(ctx context.Context, res *domain.Reservation) (bool, error) {
	query := `
		INSERT INTO reservations
		(code, asset_id, customer_id, start_date, end_date, status, origin, external_uid, total_price_cents, computed_price_cents, price_overridden, price_breakdown, notes, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
		ON CONFLICT (asset_id, external_uid) DO NOTHING
		RETURNING id, created_on, updated_on`
	err := r.db.QueryRowContext(ctx, query,
		res.Code, res.AssetID, res.CustomerID, res.StartDate, res.EndDate,
		res.Status, res.Origin, res.ExternalUID,
		res.TotalPriceCents, res.ComputedPriceCents, res.PriceOverridden, res.PriceBreakdown,
		res.Notes, time.Now(),
	).Scan(&res.ID, &res.CreatedOn, &res.UpdatedOn)

	// No row returned means the (asset_id, external_uid) pair already
	// exists: the event was imported by an earlier run.
	if errors.Is(err, sql.ErrNoRows) || isConstraintViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func isConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation || pqErr.Code == pqExclusionViolation
	}
	return false
}

func (r *reservationRepository) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *reservationRepository) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE code = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, code))
}

func (r *reservationRepository) scanOne(row *sql.Row) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	err := row.Scan(
		&res.ID, &res.Code, &res.AssetID, &res.CustomerID, &res.StartDate, &res.EndDate,
		&res.Status, &res.Origin, &res.ExternalUID,
		&res.TotalPriceCents, &res.ComputedPriceCents, &res.PriceOverridden, &res.PriceBreakdown,
		&res.Notes, &res.CreatedOn, &res.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("reservation")
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *reservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	query := `UPDATE reservations SET start_date=$1, end_date=$2, status=$3, total_price_cents=$4, computed_price_cents=$5, price_overridden=$6, price_breakdown=$7, notes=$8, updated_on=$9 WHERE id=$10`
	_, err := r.db.ExecContext(ctx, query,
		res.StartDate, res.EndDate, res.Status,
		res.TotalPriceCents, res.ComputedPriceCents, res.PriceOverridden, res.PriceBreakdown,
		res.Notes, time.Now(), res.ID,
	)
	// A rescheduled interval that loses the race against a concurrent booking
	// trips the store's exclusion constraint; that is the same "no longer
	// available" outcome as losing the race on insert.
	if isConstraintViolation(err) {
		return apperrors.Conflict("asset is no longer available for the requested dates", map[string]any{
			"asset_id": res.AssetID,
		})
	}
	return err
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id int32, status domain.ReservationStatus) error {
	query := `UPDATE reservations SET status=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}

func (r *reservationRepository) ListByAsset(ctx context.Context, assetID int32) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE asset_id = $1 ORDER BY start_date`
	return r.queryReservations(ctx, query, assetID)
}

func (r *reservationRepository) ListOverlapping(ctx context.Context, assetID int32, start, end time.Time, excludeID int32) ([]domain.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE asset_id = $1
		  AND status <> $2
		  AND start_date <= $4
		  AND end_date >= $3
		  AND ($5 = 0 OR id <> $5)
		ORDER BY start_date`
	return r.queryReservations(ctx, query, assetID, domain.ReservationStatusCancelled, start, end, excludeID)
}

func (r *reservationRepository) ListEndingOn(ctx context.Context, day time.Time) ([]domain.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE status <> $1
		  AND end_date::date = $2::date
		ORDER BY asset_id`
	return r.queryReservations(ctx, query, domain.ReservationStatusCancelled, day)
}

func (r *reservationRepository) MarkDeliveredPastEnd(ctx context.Context, cutoff time.Time) ([]int32, error) {
	query := `
		UPDATE reservations
		SET status = $1, updated_on = $2
		WHERE status = $3 AND end_date < $4
		RETURNING id`
	rows, err := r.db.QueryContext(ctx, query,
		domain.ReservationStatusDelivered, time.Now(), domain.ReservationStatusCheckedOut, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *reservationRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	return err
}

func (r *reservationRepository) queryReservations(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(
			&res.ID, &res.Code, &res.AssetID, &res.CustomerID, &res.StartDate, &res.EndDate,
			&res.Status, &res.Origin, &res.ExternalUID,
			&res.TotalPriceCents, &res.ComputedPriceCents, &res.PriceOverridden, &res.PriceBreakdown,
			&res.Notes, &res.CreatedOn, &res.UpdatedOn,
		); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}
