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

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (name, email, phone, created_on) VALUES ($1, $2, $3, $4) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, c.Name, c.Email, c.Phone, time.Now()).Scan(&c.ID, &c.CreatedOn)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT id, name, email, phone, created_on FROM customers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("customer")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT id, name, email, phone, created_on FROM customers WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("customer")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, phone, created_on FROM customers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedOn); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
