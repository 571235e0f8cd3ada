package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bookingserrors "hotelier/internal/bookings/errors"
	"hotelier/internal/bookings/repository"
	"hotelier/internal/bookings/validator"
	"hotelier/pkg/config"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/kafka"
	"hotelier/pkg/model"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context) ([]*model.Booking, error)
	GetByHotelID(ctx context.Context, hotelID any) ([]*model.Booking, error)
	GetByBookingNo(ctx context.Context, bookingNo string) ([]*model.Booking, error)
	NextBookingNo(ctx context.Context) (string, error)
	Update(ctx context.Context, id string, patch json.RawMessage) (*model.Booking, error)
	Cancel(ctx context.Context, id string, canceledBy string) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
}

// EventPublisher receives booking lifecycle events. A nil publisher
// disables event delivery without touching the service logic.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	events    EventPublisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	events EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		events:    events,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	if booking.StatusID == 0 {
		booking.StatusID = model.BookingStatusActive
	}

	// Validate before touching the sequences so a rejected payload
	// never burns a serial or booking number.
	if err := s.validator.ValidateNew(booking); err != nil {
		return s.translateValidation(err)
	}

	if err := s.assignNumbers(ctx, booking); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"booking_no", booking.BookingNo,
		"serial_no", booking.SerialNo,
		"hotel_id", booking.HotelID,
	)
	s.publishEvent(ctx, kafka.EventBookingCreated, booking)
	return nil
}

// assignNumbers stamps the serial and booking number. A booking created
// against a reference shares the referenced booking's number instead of
// claiming a fresh one; an unresolved reference falls back to a fresh
// number rather than failing the create.
func (s *bookingService) assignNumbers(ctx context.Context, booking *model.Booking) error {
	serial, err := s.repo.NextSerialNo(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to allocate serial number", "error", err)
		return apperrors.Internal("Failed to allocate serial number", err)
	}
	booking.SerialNo = serial

	if booking.Reference != "" {
		ref, err := s.repo.FindOneByBookingNo(ctx, booking.Reference)
		switch {
		case err == nil:
			booking.BookingNo = ref.BookingNo
			return nil
		case errors.Is(err, bookingserrors.ErrNotFound):
			s.cfg.Log.Warn("Referenced booking not found, allocating a new booking number",
				"reference", booking.Reference)
		default:
			return apperrors.Internal("Failed to resolve booking reference", err)
		}
	}

	bookingNo, err := s.repo.AllocateBookingNo(ctx, time.Now().UTC())
	if err != nil {
		s.cfg.Log.Error("Failed to allocate booking number", "error", err)
		return apperrors.Internal("Failed to allocate booking number", err)
	}
	booking.BookingNo = bookingNo
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}
	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}
	return bookings, nil
}

// GetByHotelID accepts whatever type the request decoded the hotel ID to
// (JSON numbers arrive as float64) and coerces it to an int.
func (s *bookingService) GetByHotelID(ctx context.Context, hotelID any) ([]*model.Booking, error) {
	id, ok := coerceHotelID(hotelID)
	if !ok {
		return nil, apperrors.InvalidInput("Invalid hotelID. Must be a number.")
	}

	bookings, err := s.repo.FindByHotelID(ctx, id)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by hotel", "hotel_id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	if len(bookings) == 0 {
		return nil, apperrors.NotFoundMessage(bookingserrors.ErrNoneForHotel.Error())
	}
	return bookings, nil
}

func (s *bookingService) GetByBookingNo(ctx context.Context, bookingNo string) ([]*model.Booking, error) {
	if bookingNo == "" {
		return nil, apperrors.InvalidInput("Booking number cannot be empty")
	}

	bookings, err := s.repo.FindByBookingNo(ctx, bookingNo)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by booking number", "booking_no", bookingNo, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	if len(bookings) == 0 {
		return nil, apperrors.NotFoundMessage(bookingserrors.ErrNoneForBookingNo.Error())
	}
	return bookings, nil
}

func (s *bookingService) NextBookingNo(ctx context.Context) (string, error) {
	bookingNo, err := s.repo.PeekBookingNo(ctx, time.Now().UTC())
	if err != nil {
		s.cfg.Log.Error("Failed to preview booking number", "error", err)
		return "", apperrors.Internal("Failed to generate booking number", err)
	}
	return bookingNo, nil
}

// Update merges the raw patch over the stored booking and replaces the
// whole document, so partial payloads leave untouched fields intact.
func (s *bookingService) Update(ctx context.Context, id string, patch json.RawMessage) (*model.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(patch, booking); err != nil {
		return nil, apperrors.InvalidInput("Invalid booking payload")
	}
	booking.ID = id

	if err := s.validator.Validate(booking); err != nil {
		return nil, s.translateValidation(err)
	}

	if err := s.repo.Replace(ctx, id, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking", err)
	}

	s.cfg.Log.Info("Booking updated successfully", "id", id, "booking_no", booking.BookingNo)
	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string, canceledBy string) (*model.Booking, error) {
	booking, err := s.repo.SetCancelled(ctx, id, canceledBy)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to cancel booking", err)
	}

	s.cfg.Log.Info("Booking cancelled", "id", id, "canceled_by", canceledBy)
	s.publishEvent(ctx, kafka.EventBookingCancelled, booking)
	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to delete booking", "id", id, "error", err)
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted", "id", id)
	return nil
}

func (s *bookingService) translateValidation(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return apperrors.Validation("Booking validation failed", validationErrs.Fields())
	}
	return apperrors.Validation(err.Error(), nil)
}

// publishEvent delivers a booking event on a best-effort basis; failures
// are logged and never fail the request.
func (s *bookingService) publishEvent(ctx context.Context, eventType string, booking *model.Booking) {
	if s.events == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(booking.BookingNo).
		WithValue(booking).
		WithEventType(eventType).
		WithSource("hotelier-server").
		Build()

	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"event_type", eventType,
			"booking_no", booking.BookingNo,
			"error", err,
		)
	}
}

func coerceHotelID(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case string:
		var parsed int
		if _, err := fmt.Sscanf(n, "%d", &parsed); err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
