package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/domain"
	"rentdesk/internal/repository"
)

type assetRepository struct {
	db *sql.DB
}

func NewAssetRepository(db *sql.DB) repository.AssetRepository {
	return &assetRepository{db: db}
}

const assetColumns = `id, kind, name, identifier, daily_rate_cents, weekly_rate_cents, monthly_rate_cents, status, feed_url, last_synced_at, created_on, updated_on`

func (r *assetRepository) Create(ctx context.Context, a *domain.Asset) error {
	query := `INSERT INTO assets (kind, name, identifier, daily_rate_cents, weekly_rate_cents, monthly_rate_cents, status, feed_url, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_on, updated_on`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		a.Kind, a.Name, a.Identifier, a.DailyRateCents, a.WeeklyRateCents, a.MonthlyRateCents,
		a.Status, a.FeedURL, now, now,
	).Scan(&a.ID, &a.CreatedOn, &a.UpdatedOn)
}

func (r *assetRepository) GetByID(ctx context.Context, id int32) (*domain.Asset, error) {
	a := &domain.Asset{}
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Kind, &a.Name, &a.Identifier, &a.DailyRateCents, &a.WeeklyRateCents,
		&a.MonthlyRateCents, &a.Status, &a.FeedURL, &a.LastSyncedAt, &a.CreatedOn, &a.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("asset")
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *assetRepository) List(ctx context.Context) ([]domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets ORDER BY name`
	return r.queryAssets(ctx, query)
}

func (r *assetRepository) ListWithFeed(ctx context.Context) ([]domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE feed_url <> '' ORDER BY id`
	return r.queryAssets(ctx, query)
}

func (r *assetRepository) queryAssets(ctx context.Context, query string, args ...any) ([]domain.Asset, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []domain.Asset
	for rows.Next() {
		var a domain.Asset
		if err := rows.Scan(
			&a.ID, &a.Kind, &a.Name, &a.Identifier, &a.DailyRateCents, &a.WeeklyRateCents,
			&a.MonthlyRateCents, &a.Status, &a.FeedURL, &a.LastSyncedAt, &a.CreatedOn, &a.UpdatedOn,
		); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (r *assetRepository) Update(ctx context.Context, a *domain.Asset) error {
	query := `UPDATE assets SET kind=$1, name=$2, identifier=$3, daily_rate_cents=$4, weekly_rate_cents=$5, monthly_rate_cents=$6, status=$7, feed_url=$8, updated_on=$9 WHERE id=$10`
	_, err := r.db.ExecContext(ctx, query,
		a.Kind, a.Name, a.Identifier, a.DailyRateCents, a.WeeklyRateCents, a.MonthlyRateCents,
		a.Status, a.FeedURL, time.Now(), a.ID,
	)
	return err
}

func (r *assetRepository) UpdateStatus(ctx context.Context, id int32, status domain.AssetStatus) error {
	query := `UPDATE assets SET status=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}

func (r *assetRepository) SetLastSynced(ctx context.Context, id int32, at time.Time) error {
	query := `UPDATE assets SET last_synced_at=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, at, time.Now(), id)
	return err
}
