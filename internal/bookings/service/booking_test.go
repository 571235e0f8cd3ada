package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	bookingserrors "hotelier/internal/bookings/errors"
	"hotelier/internal/bookings/validator"
	"hotelier/pkg/config"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/kafka"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

// Mock repository for testing
type mockBookingRepository struct {
	createFunc             func(ctx context.Context, booking *model.Booking) error
	findByIDFunc           func(ctx context.Context, id string) (*model.Booking, error)
	findAllFunc            func(ctx context.Context) ([]*model.Booking, error)
	findByHotelIDFunc      func(ctx context.Context, hotelID int) ([]*model.Booking, error)
	findByBookingNoFunc    func(ctx context.Context, bookingNo string) ([]*model.Booking, error)
	findOneByBookingNoFunc func(ctx context.Context, bookingNo string) (*model.Booking, error)
	replaceFunc            func(ctx context.Context, id string, booking *model.Booking) error
	setCancelledFunc       func(ctx context.Context, id string, canceledBy string) (*model.Booking, error)
	deleteFunc             func(ctx context.Context, id string) error
	nextSerialNoFunc       func(ctx context.Context) (int, error)
	peekBookingNoFunc      func(ctx context.Context, now time.Time) (string, error)
	allocateBookingNoFunc  func(ctx context.Context, now time.Time) (string, error)

	serialCalls   int
	allocateCalls int
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = "665f1c2d9b1e8a0001234567"
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByHotelID(ctx context.Context, hotelID int) ([]*model.Booking, error) {
	if m.findByHotelIDFunc != nil {
		return m.findByHotelIDFunc(ctx, hotelID)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByBookingNo(ctx context.Context, bookingNo string) ([]*model.Booking, error) {
	if m.findByBookingNoFunc != nil {
		return m.findByBookingNoFunc(ctx, bookingNo)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindOneByBookingNo(ctx context.Context, bookingNo string) (*model.Booking, error) {
	if m.findOneByBookingNoFunc != nil {
		return m.findOneByBookingNoFunc(ctx, bookingNo)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) Replace(ctx context.Context, id string, booking *model.Booking) error {
	if m.replaceFunc != nil {
		return m.replaceFunc(ctx, id, booking)
	}
	return nil
}

func (m *mockBookingRepository) SetCancelled(ctx context.Context, id string, canceledBy string) (*model.Booking, error) {
	if m.setCancelledFunc != nil {
		return m.setCancelledFunc(ctx, id, canceledBy)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingRepository) NextSerialNo(ctx context.Context) (int, error) {
	m.serialCalls++
	if m.nextSerialNoFunc != nil {
		return m.nextSerialNoFunc(ctx)
	}
	return m.serialCalls, nil
}

func (m *mockBookingRepository) PeekBookingNo(ctx context.Context, now time.Time) (string, error) {
	if m.peekBookingNoFunc != nil {
		return m.peekBookingNoFunc(ctx, now)
	}
	return "24050101", nil
}

func (m *mockBookingRepository) AllocateBookingNo(ctx context.Context, now time.Time) (string, error) {
	m.allocateCalls++
	if m.allocateBookingNoFunc != nil {
		return m.allocateBookingNoFunc(ctx, now)
	}
	return "24050101", nil
}

type mockEventPublisher struct {
	published []kafka.Message
	err       error
}

func (m *mockEventPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, msg)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func newTestService(repo *mockBookingRepository, events EventPublisher) BookingService {
	return NewBookingService(repo, validator.NewBookingValidator(), events, testConfig())
}

func floatPtr(f float64) *float64 { return &f }

func intPtr(n int) *int { return &n }

func validBooking() *model.Booking {
	return &model.Booking{
		FullName:         "Rahim Uddin",
		Phone:            "+8801712345678",
		HotelName:        "Sea Pearl",
		HotelID:          3,
		RoomCategoryID:   "cat-1",
		RoomCategoryName: "Deluxe",
		RoomNumberID:     "room-101",
		RoomNumberName:   "101",
		RoomPrice:        floatPtr(4500),
		CheckInDate:      time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate:     time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
		Nights:           intPtr(2),
		TotalBill:        floatPtr(9000),
		AdvancePayment:   floatPtr(9000),
		DuePayment:       floatPtr(0),
		TransactionID:    "TXN-1001",
		BookedBy:         "reception",
		BookedByID:       "665f1c2d9b1e8a0009999999",
		BookingID:        "BKG-1001",
	}
}

func TestCreate_AssignsSerialAndBookingNo(t *testing.T) {
	repo := &mockBookingRepository{
		nextSerialNoFunc: func(ctx context.Context) (int, error) { return 42, nil },
		allocateBookingNoFunc: func(ctx context.Context, now time.Time) (string, error) {
			return "24050107", nil
		},
	}
	events := &mockEventPublisher{}
	svc := newTestService(repo, events)

	booking := validBooking()
	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.SerialNo != 42 {
		t.Errorf("expected serialNo 42, got %d", booking.SerialNo)
	}
	if booking.BookingNo != "24050107" {
		t.Errorf("expected bookingNo 24050107, got %s", booking.BookingNo)
	}
	if booking.StatusID != model.BookingStatusActive {
		t.Errorf("expected statusID %d, got %d", model.BookingStatusActive, booking.StatusID)
	}
	if len(events.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(events.published))
	}
	if got := events.published[0].Headers[kafka.HeaderEventType]; got != kafka.EventBookingCreated {
		t.Errorf("expected event type %s, got %s", kafka.EventBookingCreated, got)
	}
}

func TestCreate_ReferenceReusesBookingNo(t *testing.T) {
	repo := &mockBookingRepository{
		nextSerialNoFunc: func(ctx context.Context) (int, error) { return 43, nil },
		findOneByBookingNoFunc: func(ctx context.Context, bookingNo string) (*model.Booking, error) {
			if bookingNo != "24050107" {
				t.Errorf("expected reference lookup for 24050107, got %s", bookingNo)
			}
			ref := validBooking()
			ref.BookingNo = "24050107"
			return ref, nil
		},
	}
	svc := newTestService(repo, nil)

	booking := validBooking()
	booking.Reference = "24050107"
	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.BookingNo != "24050107" {
		t.Errorf("expected reused bookingNo 24050107, got %s", booking.BookingNo)
	}
	if booking.SerialNo != 43 {
		t.Errorf("expected fresh serialNo 43, got %d", booking.SerialNo)
	}
	if repo.allocateCalls != 0 {
		t.Errorf("expected no fresh booking number allocation, got %d", repo.allocateCalls)
	}
}

func TestCreate_UnknownReferenceMintsFreshBookingNo(t *testing.T) {
	repo := &mockBookingRepository{
		allocateBookingNoFunc: func(ctx context.Context, now time.Time) (string, error) {
			return "24050102", nil
		},
	}
	svc := newTestService(repo, nil)

	booking := validBooking()
	booking.Reference = "99010199"
	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.BookingNo != "24050102" {
		t.Errorf("expected minted bookingNo 24050102, got %s", booking.BookingNo)
	}
	if repo.allocateCalls != 1 {
		t.Errorf("expected 1 booking number allocation, got %d", repo.allocateCalls)
	}
}

func TestCreate_ValidationFailureDoesNotBurnSequences(t *testing.T) {
	repo := &mockBookingRepository{}
	svc := newTestService(repo, nil)

	booking := validBooking()
	booking.FullName = ""
	err := svc.Create(context.Background(), booking)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
	if _, ok := appErr.Details["FullName"]; !ok {
		t.Errorf("expected FullName in details, got %v", appErr.Details)
	}
	if repo.serialCalls != 0 || repo.allocateCalls != 0 {
		t.Errorf("expected no sequence calls, got serial=%d allocate=%d", repo.serialCalls, repo.allocateCalls)
	}
}

func TestCreate_SameDayZeroNightBooking(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, nil)

	booking := validBooking()
	booking.CheckOutDate = booking.CheckInDate
	booking.Nights = intPtr(0)
	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("expected day-use booking to pass, got %v", err)
	}
}

func TestCreate_MissingNights(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, nil)

	booking := validBooking()
	booking.Nights = nil
	err := svc.Create(context.Background(), booking)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
	if _, ok := appErr.Details["Nights"]; !ok {
		t.Errorf("expected Nights in details, got %v", appErr.Details)
	}
}

func TestCreate_PublishFailureDoesNotFailRequest(t *testing.T) {
	repo := &mockBookingRepository{}
	events := &mockEventPublisher{err: errors.New("broker down")}
	svc := newTestService(repo, events)

	if err := svc.Create(context.Background(), validBooking()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetByHotelID_Coercion(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    int
		wantErr bool
	}{
		{name: "json number", input: float64(3), want: 3},
		{name: "numeric string", input: "3", want: 3},
		{name: "int", input: 3, want: 3},
		{name: "fractional number", input: 3.5, wantErr: true},
		{name: "word", input: "three", wantErr: true},
		{name: "nil", input: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID int
			repo := &mockBookingRepository{
				findByHotelIDFunc: func(ctx context.Context, hotelID int) ([]*model.Booking, error) {
					gotID = hotelID
					return []*model.Booking{validBooking()}, nil
				},
			}
			svc := newTestService(repo, nil)

			_, err := svc.GetByHotelID(context.Background(), tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				appErr := apperrors.AsAppError(err)
				if appErr.Message != "Invalid hotelID. Must be a number." {
					t.Errorf("unexpected message: %s", appErr.Message)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotID != tt.want {
				t.Errorf("expected hotelID %d, got %d", tt.want, gotID)
			}
		})
	}
}

func TestGetByHotelID_EmptyIsNotFound(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, nil)

	_, err := svc.GetByHotelID(context.Background(), float64(7))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected code %s, got %s", apperrors.CodeNotFound, appErr.Code)
	}
	if appErr.Message != bookingserrors.ErrNoneForHotel.Error() {
		t.Errorf("unexpected message: %s", appErr.Message)
	}
}

func TestGetByBookingNo_EmptyIsNotFound(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, nil)

	_, err := svc.GetByBookingNo(context.Background(), "24050101")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestNextBookingNo_Idempotent(t *testing.T) {
	peeks := 0
	repo := &mockBookingRepository{
		peekBookingNoFunc: func(ctx context.Context, now time.Time) (string, error) {
			peeks++
			return "24050108", nil
		},
	}
	svc := newTestService(repo, nil)

	first, err := svc.NextBookingNo(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.NextBookingNo(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("expected identical previews, got %s and %s", first, second)
	}
	if peeks != 2 {
		t.Errorf("expected 2 peeks, got %d", peeks)
	}
	if repo.allocateCalls != 0 {
		t.Errorf("preview must not allocate, got %d allocations", repo.allocateCalls)
	}
}

func TestUpdate_MergesPatchOverExisting(t *testing.T) {
	existing := validBooking()
	existing.ID = "665f1c2d9b1e8a0001234567"
	existing.BookingNo = "24050105"
	existing.SerialNo = 12

	var replaced *model.Booking
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return existing, nil
		},
		replaceFunc: func(ctx context.Context, id string, booking *model.Booking) error {
			replaced = booking
			return nil
		},
	}
	svc := newTestService(repo, nil)

	patch := json.RawMessage(`{"fullName":"Karim Mia","note":"late arrival"}`)
	updated, err := svc.Update(context.Background(), existing.ID, patch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.FullName != "Karim Mia" {
		t.Errorf("expected patched name, got %s", updated.FullName)
	}
	if updated.Note != "late arrival" {
		t.Errorf("expected patched note, got %s", updated.Note)
	}
	if updated.BookingNo != "24050105" || updated.SerialNo != 12 {
		t.Errorf("expected untouched identity fields, got %s/%d", updated.BookingNo, updated.SerialNo)
	}
	if replaced == nil {
		t.Fatal("expected Replace to be called")
	}
}

func TestUpdate_InvalidPatch(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return validBooking(), nil
		},
	}
	svc := newTestService(repo, nil)

	_, err := svc.Update(context.Background(), "665f1c2d9b1e8a0001234567", json.RawMessage(`{"nights":`))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestCancel_PublishesCancelledEvent(t *testing.T) {
	cancelled := validBooking()
	cancelled.StatusID = model.BookingStatusCancelled
	cancelled.CanceledBy = "manager"
	cancelled.BookingNo = "24050105"

	repo := &mockBookingRepository{
		setCancelledFunc: func(ctx context.Context, id string, canceledBy string) (*model.Booking, error) {
			if canceledBy != "manager" {
				t.Errorf("expected canceledBy manager, got %s", canceledBy)
			}
			return cancelled, nil
		},
	}
	events := &mockEventPublisher{}
	svc := newTestService(repo, events)

	booking, err := svc.Cancel(context.Background(), "665f1c2d9b1e8a0001234567", "manager")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.StatusID != model.BookingStatusCancelled {
		t.Errorf("expected statusID %d, got %d", model.BookingStatusCancelled, booking.StatusID)
	}
	if len(events.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(events.published))
	}
	if got := events.published[0].Headers[kafka.HeaderEventType]; got != kafka.EventBookingCancelled {
		t.Errorf("expected event type %s, got %s", kafka.EventBookingCancelled, got)
	}
}

func TestDelete_InvalidID(t *testing.T) {
	repo := &mockBookingRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			return bookingserrors.ErrInvalidID
		},
	}
	svc := newTestService(repo, nil)

	err := svc.Delete(context.Background(), "not-an-object-id")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Errorf("expected invalid input, got %v", err)
	}
}
