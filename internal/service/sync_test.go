package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/domain"
	"rentdesk/internal/service"
)

const feedURL = "https://calendars.example.com/unit-12.ics"

const twoEventFeed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:evt-1@partner.example.com\r\n" +
	"SUMMARY:Guest stay\r\n" +
	"DTSTART:20260501\r\n" +
	"DTEND:20260505\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:evt-2@partner.example.com\r\n" +
	"SUMMARY:Maintenance hold\r\n" +
	"DTSTART:20260510\r\n" +
	"DTEND:20260512\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

type syncFixture struct {
	assetRepo *MockAssetRepo
	resRepo   *MockReservationRepo
	fetcher   *MockFetcher
	svc       service.SyncService
}

func newSyncFixture() *syncFixture {
	f := &syncFixture{
		assetRepo: new(MockAssetRepo),
		resRepo:   new(MockReservationRepo),
		fetcher:   new(MockFetcher),
	}
	availability := service.NewAvailabilityService(f.resRepo)
	f.svc = service.NewSyncService(f.assetRepo, f.resRepo, availability, f.fetcher)
	return f
}

func feedAsset() *domain.Asset {
	a := testAsset()
	a.ID = 12
	a.Kind = domain.AssetKindUnit
	a.Name = "Unit 12"
	a.FeedURL = feedURL
	return a
}

func TestSyncAsset_ImportsNewEvents(t *testing.T) {
	f := newSyncFixture()
	f.assetRepo.On("GetByID", mock.Anything, int32(12)).Return(feedAsset(), nil)
	f.fetcher.On("Fetch", mock.Anything, feedURL).Return(twoEventFeed, nil)
	f.resRepo.On("ListOverlapping", mock.Anything, int32(12), mock.Anything, mock.Anything, int32(0)).
		Return([]domain.Reservation{}, nil)
	f.resRepo.On("CreateImported", mock.Anything, mock.AnythingOfType("*domain.Reservation")).
		Return(true, nil)
	f.assetRepo.On("SetLastSynced", mock.Anything, int32(12), mock.AnythingOfType("time.Time")).
		Return(nil)

	report, err := f.svc.SyncAsset(context.Background(), 12)

	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 0, report.Seen)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 0, report.ExternalConflicts)
	f.resRepo.AssertNumberOfCalls(t, "CreateImported", 2)
	f.assetRepo.AssertCalled(t, "SetLastSynced", mock.Anything, int32(12), mock.AnythingOfType("time.Time"))

	// Imported rows carry the feed's identity and occupy the calendar.
	created := f.resRepo.Calls[1].Arguments.Get(1).(*domain.Reservation)
	assert.Equal(t, domain.ReservationOriginImported, created.Origin)
	assert.Equal(t, domain.ReservationStatusConfirmed, created.Status)
	require.NotNil(t, created.ExternalUID)
	assert.Equal(t, "evt-1@partner.example.com", *created.ExternalUID)
	assert.Equal(t, day(2026, 5, 1), created.StartDate)
	assert.Equal(t, day(2026, 5, 5), created.EndDate)
}

func TestSyncAsset_SecondRunImportsNothing(t *testing.T) {
	f := newSyncFixture()
	f.assetRepo.On("GetByID", mock.Anything, int32(12)).Return(feedAsset(), nil)
	f.fetcher.On("Fetch", mock.Anything, feedURL).Return(twoEventFeed, nil)
	f.resRepo.On("ListOverlapping", mock.Anything, int32(12), mock.Anything, mock.Anything, int32(0)).
		Return([]domain.Reservation{}, nil)
	// The store's uniqueness on (asset, external UID) reports every event as
	// already present.
	f.resRepo.On("CreateImported", mock.Anything, mock.AnythingOfType("*domain.Reservation")).
		Return(false, nil)
	f.assetRepo.On("SetLastSynced", mock.Anything, int32(12), mock.AnythingOfType("time.Time")).
		Return(nil)

	report, err := f.svc.SyncAsset(context.Background(), 12)

	require.NoError(t, err)
	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, 2, report.Seen)
}

func TestSyncAsset_NoFeedConfigured(t *testing.T) {
	f := newSyncFixture()
	bare := feedAsset()
	bare.FeedURL = ""
	f.assetRepo.On("GetByID", mock.Anything, int32(12)).Return(bare, nil)

	_, err := f.svc.SyncAsset(context.Background(), 12)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConfiguration, apperrors.CodeOf(err))
	f.fetcher.AssertNotCalled(t, "Fetch")
}

func TestSyncAsset_EmptyFeed(t *testing.T) {
	f := newSyncFixture()
	f.assetRepo.On("GetByID", mock.Anything, int32(12)).Return(feedAsset(), nil)
	f.fetcher.On("Fetch", mock.Anything, feedURL).Return("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n", nil)

	_, err := f.svc.SyncAsset(context.Background(), 12)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeEmptyFeed, apperrors.CodeOf(err))
	f.resRepo.AssertNotCalled(t, "CreateImported")
}

func TestSyncAsset_FetchErrorPropagates(t *testing.T) {
	f := newSyncFixture()
	f.assetRepo.On("GetByID", mock.Anything, int32(12)).Return(feedAsset(), nil)
	f.fetcher.On("Fetch", mock.Anything, feedURL).
		Return("", apperrors.FetchTimeout(context.DeadlineExceeded, feedURL))

	_, err := f.svc.SyncAsset(context.Background(), 12)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeFetchTimeout, apperrors.CodeOf(err))
}

func TestSyncAsset_ManualConflictSkipsEvent(t *testing.T) {
	f := newSyncFixture()
	f.assetRepo.On("GetByID", mock.Anything, int32(12)).Return(feedAsset(), nil)
	f.fetcher.On("Fetch", mock.Anything, feedURL).Return(twoEventFeed, nil)

	// The first event's dates are held by a manually entered reservation.
	f.resRepo.On("ListOverlapping", mock.Anything, int32(12), day(2026, 5, 1), day(2026, 5, 5), int32(0)).
		Return([]domain.Reservation{
			{ID: 88, Code: "RSV-MANUAL01", AssetID: 12, Origin: domain.ReservationOriginManual,
				StartDate: day(2026, 5, 3), EndDate: day(2026, 5, 8), Status: domain.ReservationStatusConfirmed},
		}, nil)
	f.resRepo.On("ListOverlapping", mock.Anything, int32(12), day(2026, 5, 10), day(2026, 5, 12), int32(0)).
		Return([]domain.Reservation{}, nil)
	f.resRepo.On("CreateImported", mock.Anything, mock.AnythingOfType("*domain.Reservation")).
		Return(true, nil)
	f.assetRepo.On("SetLastSynced", mock.Anything, int32(12), mock.AnythingOfType("time.Time")).
		Return(nil)

	report, err := f.svc.SyncAsset(context.Background(), 12)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 1, report.ExternalConflicts)
	f.resRepo.AssertNumberOfCalls(t, "CreateImported", 1)
}

func TestSyncAsset_OwnImportedRowIsNotAConflict(t *testing.T) {
	f := newSyncFixture()
	f.assetRepo.On("GetByID", mock.Anything, int32(12)).Return(feedAsset(), nil)
	f.fetcher.On("Fetch", mock.Anything, feedURL).Return(twoEventFeed, nil)

	uid1 := "evt-1@partner.example.com"
	uid2 := "evt-2@partner.example.com"
	f.resRepo.On("ListOverlapping", mock.Anything, int32(12), day(2026, 5, 1), day(2026, 5, 5), int32(0)).
		Return([]domain.Reservation{
			{ID: 90, AssetID: 12, Origin: domain.ReservationOriginImported, ExternalUID: &uid1,
				StartDate: day(2026, 5, 1), EndDate: day(2026, 5, 5), Status: domain.ReservationStatusConfirmed},
		}, nil)
	f.resRepo.On("ListOverlapping", mock.Anything, int32(12), day(2026, 5, 10), day(2026, 5, 12), int32(0)).
		Return([]domain.Reservation{
			{ID: 91, AssetID: 12, Origin: domain.ReservationOriginImported, ExternalUID: &uid2,
				StartDate: day(2026, 5, 10), EndDate: day(2026, 5, 12), Status: domain.ReservationStatusConfirmed},
		}, nil)
	f.resRepo.On("CreateImported", mock.Anything, mock.AnythingOfType("*domain.Reservation")).
		Return(false, nil)
	f.assetRepo.On("SetLastSynced", mock.Anything, int32(12), mock.AnythingOfType("time.Time")).
		Return(nil)

	report, err := f.svc.SyncAsset(context.Background(), 12)

	require.NoError(t, err)
	assert.Equal(t, 0, report.ExternalConflicts)
	assert.Equal(t, 2, report.Seen)
}

func TestPreviewFeed_ParsesWithoutPersisting(t *testing.T) {
	f := newSyncFixture()
	f.fetcher.On("Fetch", mock.Anything, feedURL).Return(twoEventFeed, nil)

	result, err := f.svc.PreviewFeed(context.Background(), feedURL)

	require.NoError(t, err)
	assert.Len(t, result.Events, 2)
	assert.Equal(t, "Guest stay", result.Events[0].Summary)
	f.resRepo.AssertNotCalled(t, "CreateImported")
}

func TestPreviewFeed_RequiresURL(t *testing.T) {
	f := newSyncFixture()

	_, err := f.svc.PreviewFeed(context.Background(), "")

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConfiguration, apperrors.CodeOf(err))
	f.fetcher.AssertNotCalled(t, "Fetch")
}
