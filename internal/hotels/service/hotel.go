package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"

	hotelserrors "hotelier/internal/hotels/errors"
	"hotelier/internal/hotels/repository"
	"hotelier/pkg/config"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/model"
	"hotelier/pkg/sequence"
)

type HotelService interface {
	Create(ctx context.Context, hotel *model.Hotel) error
	GetAll(ctx context.Context) ([]*model.Hotel, error)
	Update(ctx context.Context, id string, patch json.RawMessage) (*model.Hotel, error)
	Delete(ctx context.Context, id string) error
	AppendRoomBooking(ctx context.Context, hotelID int, categoryName, roomName string, entry model.RoomBooking, newBookedDates []string) (*model.Hotel, error)
	RemoveRoomBookings(ctx context.Context, hotelID int, categoryName, roomName string, datesToRemove []string) (*model.Hotel, error)
	UpdateRoomStatuses(ctx context.Context, hotelID int, categoryName string, updates []model.RoomStatusUpdate) (*model.Hotel, error)
}

type hotelService struct {
	repo     repository.HotelRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewHotelService(repo repository.HotelRepository, cfg *config.Config) HotelService {
	return &hotelService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *hotelService) Create(ctx context.Context, hotel *model.Hotel) error {
	if err := s.validate.Struct(hotel); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			details := make(map[string]any, len(validationErrs))
			for _, fe := range validationErrs {
				details[fe.Field()] = fe.Tag()
			}
			return apperrors.Validation("Hotel validation failed", details)
		}
		return apperrors.Validation(err.Error(), nil)
	}

	hotelID, err := s.repo.NextHotelID(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to allocate hotel ID", "error", err)
		return apperrors.Internal("Failed to allocate hotel ID", err)
	}
	hotel.HotelID = hotelID

	if err := s.repo.Create(ctx, hotel); err != nil {
		s.cfg.Log.Error("Failed to create hotel", "error", err)
		return apperrors.Internal("Failed to create hotel", err)
	}

	s.cfg.Log.Info("Hotel created successfully", "id", hotel.ID, "hotel_id", hotel.HotelID, "name", hotel.HotelName)
	return nil
}

func (s *hotelService) GetAll(ctx context.Context) ([]*model.Hotel, error) {
	hotels, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list hotels", "error", err)
		return nil, apperrors.Internal("Failed to retrieve hotels", err)
	}
	if hotels == nil {
		hotels = []*model.Hotel{}
	}
	return hotels, nil
}

func (s *hotelService) Update(ctx context.Context, id string, patch json.RawMessage) (*model.Hotel, error) {
	hotel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateLookup(err, id)
	}

	if err := json.Unmarshal(patch, hotel); err != nil {
		return nil, apperrors.InvalidInput("Invalid hotel payload")
	}
	hotel.ID = id

	if err := s.repo.Replace(ctx, id, hotel); err != nil {
		if errors.Is(err, hotelserrors.ErrHotelNotFound) {
			return nil, apperrors.NotFoundWithID("Hotel", id)
		}
		s.cfg.Log.Error("Failed to update hotel", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update hotel", err)
	}

	s.cfg.Log.Info("Hotel updated successfully", "id", id)
	return hotel, nil
}

func (s *hotelService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, hotelserrors.ErrHotelNotFound) {
			return apperrors.NotFoundWithID("Hotel", id)
		}
		if errors.Is(err, hotelserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid hotel ID format")
		}
		s.cfg.Log.Error("Failed to delete hotel", "id", id, "error", err)
		return apperrors.Internal("Failed to delete hotel", err)
	}

	s.cfg.Log.Info("Hotel deleted", "id", id)
	return nil
}

// findRoom walks hotel → category → room by exact name match and reports the
// first level that misses. The returned pointer addresses the room inside
// the hotel's own slice, so callers mutate the aggregate in place.
func (s *hotelService) findRoom(ctx context.Context, hotelID int, categoryName, roomName string) (*model.Hotel, *model.RoomNumber, error) {
	hotel, err := s.repo.FindByHotelID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, hotelserrors.ErrHotelNotFound) {
			return nil, nil, apperrors.NotFoundMessage("Hotel not found")
		}
		return nil, nil, apperrors.Internal("Failed to retrieve hotel", err)
	}

	for ci := range hotel.RoomCategories {
		category := &hotel.RoomCategories[ci]
		if category.Name != categoryName {
			continue
		}
		for ri := range category.RoomNumbers {
			if category.RoomNumbers[ri].Name == roomName {
				return hotel, &category.RoomNumbers[ri], nil
			}
		}
		return nil, nil, apperrors.NotFoundMessage("Room not found")
	}

	return nil, nil, apperrors.NotFoundMessage("Room category not found")
}

// AppendRoomBooking adds exactly one embedded booking and all supplied dates
// to the room, without dedup or overlap checks, then persists the whole
// aggregate. Double-booking prevention lives with the caller.
func (s *hotelService) AppendRoomBooking(ctx context.Context, hotelID int, categoryName, roomName string, entry model.RoomBooking, newBookedDates []string) (*model.Hotel, error) {
	hotel, room, err := s.findRoom(ctx, hotelID, categoryName, roomName)
	if err != nil {
		return nil, err
	}

	room.Bookings = append(room.Bookings, entry)
	room.BookedDates = append(room.BookedDates, newBookedDates...)

	if err := s.repo.Replace(ctx, hotel.ID, hotel); err != nil {
		s.cfg.Log.Error("Failed to persist room booking", "hotel_id", hotelID, "room", roomName, "error", err)
		return nil, apperrors.Internal("Failed to update hotel", err)
	}

	s.cfg.Log.Info("Room booking appended", "hotel_id", hotelID, "category", categoryName, "room", roomName)
	return hotel, nil
}

// RemoveRoomBookings drops embedded bookings whose check-in normalizes to a
// date in datesToRemove, and independently drops exact string matches from
// bookedDates. The two filters are deliberately decoupled; unifying them
// would change observable behavior for non-canonical date strings.
func (s *hotelService) RemoveRoomBookings(ctx context.Context, hotelID int, categoryName, roomName string, datesToRemove []string) (*model.Hotel, error) {
	hotel, room, err := s.findRoom(ctx, hotelID, categoryName, roomName)
	if err != nil {
		return nil, err
	}

	remove := make(map[string]struct{}, len(datesToRemove))
	for _, d := range datesToRemove {
		remove[d] = struct{}{}
	}

	kept := room.Bookings[:0]
	for _, b := range room.Bookings {
		if _, drop := remove[sequence.DateOnly(b.CheckIn)]; !drop {
			kept = append(kept, b)
		}
	}
	room.Bookings = kept

	keptDates := room.BookedDates[:0]
	for _, d := range room.BookedDates {
		if _, drop := remove[d]; !drop {
			keptDates = append(keptDates, d)
		}
	}
	room.BookedDates = keptDates

	if err := s.repo.Replace(ctx, hotel.ID, hotel); err != nil {
		s.cfg.Log.Error("Failed to persist booking removal", "hotel_id", hotelID, "room", roomName, "error", err)
		return nil, apperrors.Internal("Failed to update hotel", err)
	}

	s.cfg.Log.Info("Room bookings removed", "hotel_id", hotelID, "category", categoryName, "room", roomName, "dates", datesToRemove)
	return hotel, nil
}

// UpdateRoomStatuses overwrites the status of each named room in the matched
// category. Pairs naming unknown rooms are skipped without error.
func (s *hotelService) UpdateRoomStatuses(ctx context.Context, hotelID int, categoryName string, updates []model.RoomStatusUpdate) (*model.Hotel, error) {
	hotel, err := s.repo.FindByHotelID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, hotelserrors.ErrHotelNotFound) {
			return nil, apperrors.NotFoundMessage("Hotel not found")
		}
		return nil, apperrors.Internal("Failed to retrieve hotel", err)
	}

	byName := make(map[string]string, len(updates))
	for _, u := range updates {
		byName[u.Name] = u.Status
	}

	found := false
	for ci := range hotel.RoomCategories {
		category := &hotel.RoomCategories[ci]
		if category.Name != categoryName {
			continue
		}
		found = true
		for ri := range category.RoomNumbers {
			if status, ok := byName[category.RoomNumbers[ri].Name]; ok {
				category.RoomNumbers[ri].Status = status
			}
		}
	}
	if !found {
		return nil, apperrors.NotFoundMessage("Room category not found")
	}

	if err := s.repo.Replace(ctx, hotel.ID, hotel); err != nil {
		s.cfg.Log.Error("Failed to persist room statuses", "hotel_id", hotelID, "category", categoryName, "error", err)
		return nil, apperrors.Internal("Failed to update hotel", err)
	}

	s.cfg.Log.Info("Room statuses updated", "hotel_id", hotelID, "category", categoryName, "count", len(updates))
	return hotel, nil
}

func (s *hotelService) translateLookup(err error, id string) error {
	if errors.Is(err, hotelserrors.ErrHotelNotFound) {
		return apperrors.NotFoundWithID("Hotel", id)
	}
	if errors.Is(err, hotelserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid hotel ID format")
	}
	return apperrors.Internal("Failed to retrieve hotel", err)
}
