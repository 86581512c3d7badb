package postgres

import (
	"database/sql"

	_ "github.com/lib/pq"

	"rentdesk/internal/repository"
)

// Store bundles the per-entity repositories over one connection pool.
type Store struct {
	db *sql.DB

	Assets       repository.AssetRepository
	Customers    repository.CustomerRepository
	Reservations repository.ReservationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		Assets:       NewAssetRepository(db),
		Customers:    NewCustomerRepository(db),
		Reservations: NewReservationRepository(db),
	}
}
