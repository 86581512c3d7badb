package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rentdesk/internal/domain"
)

// MockAssetRepo
type MockAssetRepo struct {
	mock.Mock
}

func (m *MockAssetRepo) Create(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}
func (m *MockAssetRepo) GetByID(ctx context.Context, id int32) (*domain.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetRepo) List(ctx context.Context) ([]domain.Asset, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Asset), args.Error(1)
}
func (m *MockAssetRepo) Update(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}
func (m *MockAssetRepo) UpdateStatus(ctx context.Context, id int32, status domain.AssetStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockAssetRepo) ListWithFeed(ctx context.Context) ([]domain.Asset, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Asset), args.Error(1)
}
func (m *MockAssetRepo) SetLastSynced(ctx context.Context, id int32, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Customer), args.Error(1)
}

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) CreateBooked(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReservationRepo) CreateImported(ctx context.Context, r *domain.Reservation) (bool, error) {
	args := m.Called(ctx, r)
	return args.Bool(0), args.Error(1)
}
func (m *MockReservationRepo) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) Update(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReservationRepo) UpdateStatus(ctx context.Context, id int32, status domain.ReservationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockReservationRepo) ListByAsset(ctx context.Context, assetID int32) ([]domain.Reservation, error) {
	args := m.Called(ctx, assetID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListOverlapping(ctx context.Context, assetID int32, start, end time.Time, excludeID int32) ([]domain.Reservation, error) {
	args := m.Called(ctx, assetID, start, end, excludeID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListEndingOn(ctx context.Context, day time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) MarkDeliveredPastEnd(ctx context.Context, cutoff time.Time) ([]int32, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]int32), args.Error(1)
}
func (m *MockReservationRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingConfirmation(ctx context.Context, toEmail, toName, assetName string, res *domain.Reservation) error {
	args := m.Called(ctx, toEmail, toName, assetName, res)
	return args.Error(0)
}
func (m *MockEmailService) SendCancellationNotice(ctx context.Context, toEmail, toName, assetName string, res *domain.Reservation) error {
	args := m.Called(ctx, toEmail, toName, assetName, res)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReminder(ctx context.Context, toEmail, toName, assetName string, res *domain.Reservation) error {
	args := m.Called(ctx, toEmail, toName, assetName, res)
	return args.Error(0)
}

// MockFetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, feedURL string) (string, error) {
	args := m.Called(ctx, feedURL)
	return args.String(0), args.Error(1)
}
