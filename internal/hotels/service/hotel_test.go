package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	hotelserrors "hotelier/internal/hotels/errors"
	"hotelier/pkg/config"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

type mockHotelRepository struct {
	createFunc        func(ctx context.Context, hotel *model.Hotel) error
	findByIDFunc      func(ctx context.Context, id string) (*model.Hotel, error)
	findByHotelIDFunc func(ctx context.Context, hotelID int) (*model.Hotel, error)
	findAllFunc       func(ctx context.Context) ([]*model.Hotel, error)
	replaceFunc       func(ctx context.Context, id string, hotel *model.Hotel) error
	deleteFunc        func(ctx context.Context, id string) error
	nextHotelIDFunc   func(ctx context.Context) (int, error)
}

func (m *mockHotelRepository) Create(ctx context.Context, hotel *model.Hotel) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, hotel)
	}
	hotel.ID = "665f1c2d9b1e8a0001234567"
	return nil
}

func (m *mockHotelRepository) FindByID(ctx context.Context, id string) (*model.Hotel, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, hotelserrors.ErrHotelNotFound
}

func (m *mockHotelRepository) FindByHotelID(ctx context.Context, hotelID int) (*model.Hotel, error) {
	if m.findByHotelIDFunc != nil {
		return m.findByHotelIDFunc(ctx, hotelID)
	}
	return nil, hotelserrors.ErrHotelNotFound
}

func (m *mockHotelRepository) FindAll(ctx context.Context) ([]*model.Hotel, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.Hotel{}, nil
}

func (m *mockHotelRepository) Replace(ctx context.Context, id string, hotel *model.Hotel) error {
	if m.replaceFunc != nil {
		return m.replaceFunc(ctx, id, hotel)
	}
	return nil
}

func (m *mockHotelRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockHotelRepository) NextHotelID(ctx context.Context) (int, error) {
	if m.nextHotelIDFunc != nil {
		return m.nextHotelIDFunc(ctx)
	}
	return 0, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func testHotel() *model.Hotel {
	return &model.Hotel{
		ID:               "665f1c2d9b1e8a0001234567",
		HotelID:          3,
		HotelName:        "Sea Pearl",
		HotelDescription: "Beachfront",
		RoomCategories: []model.RoomCategory{
			{
				Name: "Deluxe",
				RoomNumbers: []model.RoomNumber{
					{
						Name:        "101",
						BookedDates: []string{"2024-05-01", "2024-05-02"},
						Bookings: []model.RoomBooking{
							{GuestName: "Rahim", CheckIn: time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)},
						},
						Status: "occupied",
					},
					{
						Name:        "102",
						BookedDates: []string{"2024-05-01"},
						Bookings: []model.RoomBooking{
							{GuestName: "Karim", CheckIn: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
						},
						Status: "occupied",
					},
				},
			},
			{
				Name: "Standard",
				RoomNumbers: []model.RoomNumber{
					{Name: "201", Status: "free"},
				},
			},
		},
	}
}

func TestCreate_AssignsSequentialHotelID(t *testing.T) {
	repo := &mockHotelRepository{
		nextHotelIDFunc: func(ctx context.Context) (int, error) { return 0, nil },
	}
	svc := NewHotelService(repo, testConfig())

	hotel := &model.Hotel{HotelName: "First Hotel", HotelDescription: "The very first"}
	if err := svc.Create(context.Background(), hotel); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hotel.HotelID != 0 {
		t.Errorf("expected first hotelID 0, got %d", hotel.HotelID)
	}
}

func TestCreate_MissingName(t *testing.T) {
	svc := NewHotelService(&mockHotelRepository{}, testConfig())

	err := svc.Create(context.Background(), &model.Hotel{HotelDescription: "No name"})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestAppendRoomBooking_SiblingRoomsUntouched(t *testing.T) {
	hotel := testHotel()
	siblingBefore := hotel.RoomCategories[0].RoomNumbers[1]
	siblingDates := append([]string(nil), siblingBefore.BookedDates...)

	var persisted *model.Hotel
	repo := &mockHotelRepository{
		findByHotelIDFunc: func(ctx context.Context, hotelID int) (*model.Hotel, error) {
			return hotel, nil
		},
		replaceFunc: func(ctx context.Context, id string, h *model.Hotel) error {
			persisted = h
			return nil
		},
	}
	svc := NewHotelService(repo, testConfig())

	entry := model.RoomBooking{GuestName: "Jamal", CheckIn: time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)}
	updated, err := svc.AppendRoomBooking(context.Background(), 3, "Deluxe", "101", entry, []string{"2024-05-05", "2024-05-06"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	room := updated.RoomCategories[0].RoomNumbers[0]
	if len(room.Bookings) != 2 {
		t.Errorf("expected 2 bookings, got %d", len(room.Bookings))
	}
	if len(room.BookedDates) != 4 {
		t.Errorf("expected 4 booked dates, got %d", len(room.BookedDates))
	}

	sibling := updated.RoomCategories[0].RoomNumbers[1]
	if sibling.Name != siblingBefore.Name || len(sibling.Bookings) != 1 || !reflect.DeepEqual(sibling.BookedDates, siblingDates) {
		t.Errorf("sibling room changed: %+v", sibling)
	}
	if persisted == nil {
		t.Fatal("expected whole aggregate to be persisted")
	}
}

func TestAppendRoomBooking_NoDedup(t *testing.T) {
	hotel := testHotel()
	repo := &mockHotelRepository{
		findByHotelIDFunc: func(ctx context.Context, hotelID int) (*model.Hotel, error) {
			return hotel, nil
		},
	}
	svc := NewHotelService(repo, testConfig())

	// 2024-05-01 is already booked; the duplicate is kept.
	updated, err := svc.AppendRoomBooking(context.Background(), 3, "Deluxe", "101", model.RoomBooking{}, []string{"2024-05-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dates := updated.RoomCategories[0].RoomNumbers[0].BookedDates
	count := 0
	for _, d := range dates {
		if d == "2024-05-01" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected duplicate date kept, got %v", dates)
	}
}

func TestFindRoom_DistinctNotFoundLevels(t *testing.T) {
	hotel := testHotel()
	repo := &mockHotelRepository{
		findByHotelIDFunc: func(ctx context.Context, hotelID int) (*model.Hotel, error) {
			if hotelID != 3 {
				return nil, hotelserrors.ErrHotelNotFound
			}
			return hotel, nil
		},
	}
	svc := NewHotelService(repo, testConfig())

	tests := []struct {
		name     string
		hotelID  int
		category string
		room     string
		wantMsg  string
	}{
		{name: "missing hotel", hotelID: 99, category: "Deluxe", room: "101", wantMsg: "Hotel not found"},
		{name: "missing category", hotelID: 3, category: "Suite", room: "101", wantMsg: "Room category not found"},
		{name: "missing room", hotelID: 3, category: "Deluxe", room: "999", wantMsg: "Room not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AppendRoomBooking(context.Background(), tt.hotelID, tt.category, tt.room, model.RoomBooking{}, nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			appErr := apperrors.AsAppError(err)
			if appErr.Code != apperrors.CodeNotFound {
				t.Errorf("expected not found, got %s", appErr.Code)
			}
			if appErr.Message != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, appErr.Message)
			}
		})
	}
}

func TestRemoveRoomBookings_DecoupledFilters(t *testing.T) {
	hotel := testHotel()
	// Room 101 has a booking checking in 2024-05-01T14:30 (normalizes to
	// 2024-05-01) and bookedDates ["2024-05-01", "2024-05-02"].
	repo := &mockHotelRepository{
		findByHotelIDFunc: func(ctx context.Context, hotelID int) (*model.Hotel, error) {
			return hotel, nil
		},
	}
	svc := NewHotelService(repo, testConfig())

	updated, err := svc.RemoveRoomBookings(context.Background(), 3, "Deluxe", "101", []string{"2024-05-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	room := updated.RoomCategories[0].RoomNumbers[0]
	if len(room.Bookings) != 0 {
		t.Errorf("expected booking with matching check-in removed, got %d left", len(room.Bookings))
	}
	if !reflect.DeepEqual(room.BookedDates, []string{"2024-05-02"}) {
		t.Errorf("expected only exact string match removed, got %v", room.BookedDates)
	}
}

func TestRemoveRoomBookings_NonMatchingDateStringLeftAlone(t *testing.T) {
	hotel := testHotel()
	room := &hotel.RoomCategories[0].RoomNumbers[0]
	// A date string in a different format never matches the normalized
	// check-in, so the two lists drift. That drift is intended behavior.
	room.BookedDates = []string{"05/01/2024"}

	repo := &mockHotelRepository{
		findByHotelIDFunc: func(ctx context.Context, hotelID int) (*model.Hotel, error) {
			return hotel, nil
		},
	}
	svc := NewHotelService(repo, testConfig())

	updated, err := svc.RemoveRoomBookings(context.Background(), 3, "Deluxe", "101", []string{"2024-05-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := updated.RoomCategories[0].RoomNumbers[0]
	if len(got.Bookings) != 0 {
		t.Errorf("expected embedded booking removed, got %d left", len(got.Bookings))
	}
	if !reflect.DeepEqual(got.BookedDates, []string{"05/01/2024"}) {
		t.Errorf("expected differently formatted date kept, got %v", got.BookedDates)
	}
}

func TestUpdateRoomStatuses_SilentlySkipsUnknownRooms(t *testing.T) {
	hotel := testHotel()
	repo := &mockHotelRepository{
		findByHotelIDFunc: func(ctx context.Context, hotelID int) (*model.Hotel, error) {
			return hotel, nil
		},
	}
	svc := NewHotelService(repo, testConfig())

	updates := []model.RoomStatusUpdate{
		{Name: "101", Status: "maintenance"},
		{Name: "does-not-exist", Status: "free"},
	}
	updated, err := svc.UpdateRoomStatuses(context.Background(), 3, "Deluxe", updates)
	if err != nil {
		t.Fatalf("expected overall success, got %v", err)
	}

	rooms := updated.RoomCategories[0].RoomNumbers
	if rooms[0].Status != "maintenance" {
		t.Errorf("expected room 101 updated, got %s", rooms[0].Status)
	}
	if rooms[1].Status != "occupied" {
		t.Errorf("expected room 102 untouched, got %s", rooms[1].Status)
	}
}

func TestUpdateRoomStatuses_UnknownCategory(t *testing.T) {
	repo := &mockHotelRepository{
		findByHotelIDFunc: func(ctx context.Context, hotelID int) (*model.Hotel, error) {
			return testHotel(), nil
		},
	}
	svc := NewHotelService(repo, testConfig())

	_, err := svc.UpdateRoomStatuses(context.Background(), 3, "Suite", []model.RoomStatusUpdate{{Name: "101", Status: "free"}})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}
