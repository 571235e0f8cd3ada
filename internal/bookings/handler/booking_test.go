package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

type mockBookingService struct {
	createFunc         func(ctx context.Context, booking *model.Booking) error
	getByIDFunc        func(ctx context.Context, id string) (*model.Booking, error)
	getAllFunc         func(ctx context.Context) ([]*model.Booking, error)
	getByHotelIDFunc   func(ctx context.Context, hotelID any) ([]*model.Booking, error)
	getByBookingNoFunc func(ctx context.Context, bookingNo string) ([]*model.Booking, error)
	updateFunc         func(ctx context.Context, id string, patch json.RawMessage) (*model.Booking, error)
	cancelFunc         func(ctx context.Context, id string, canceledBy string) (*model.Booking, error)
	deleteFunc         func(ctx context.Context, id string) error
}

func (m *mockBookingService) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.Booking{}, nil
}

func (m *mockBookingService) GetAll(ctx context.Context) ([]*model.Booking, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingService) GetByHotelID(ctx context.Context, hotelID any) ([]*model.Booking, error) {
	if m.getByHotelIDFunc != nil {
		return m.getByHotelIDFunc(ctx, hotelID)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingService) GetByBookingNo(ctx context.Context, bookingNo string) ([]*model.Booking, error) {
	if m.getByBookingNoFunc != nil {
		return m.getByBookingNoFunc(ctx, bookingNo)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingService) NextBookingNo(ctx context.Context) (string, error) {
	return "24050101", nil
}

func (m *mockBookingService) Update(ctx context.Context, id string, patch json.RawMessage) (*model.Booking, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return &model.Booking{}, nil
}

func (m *mockBookingService) Cancel(ctx context.Context, id string, canceledBy string) (*model.Booking, error) {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id, canceledBy)
	}
	return &model.Booking{}, nil
}

func (m *mockBookingService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func TestCreate_Success(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			booking.BookingNo = "24050107"
			booking.SerialNo = 42
			return nil
		},
	}
	h := NewBookingHandler(svc, testLogger())

	body := bytes.NewBufferString(`{"fullName":"Rahim Uddin","phone":"+8801712345678"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/booking", body)
	rec := httptest.NewRecorder()

	h.Create(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Message string        `json:"message"`
		Booking model.Booking `json:"booking"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Booking created successfully" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	if resp.Booking.BookingNo != "24050107" {
		t.Errorf("expected bookingNo 24050107, got %s", resp.Booking.BookingNo)
	}
}

func TestCreate_InvalidBody(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/booking", bytes.NewBufferString(`{`))
	rec := httptest.NewRecorder()

	h.Create(rec, req, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCreate_ValidationErrorStatus(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			return apperrors.Validation("Booking validation failed", map[string]any{
				"FullName": "FullName is required",
			})
		},
	}
	h := NewBookingHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/booking", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var resp struct {
		Error   string         `json:"error"`
		Details map[string]any `json:"details"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Details["FullName"] == nil {
		t.Errorf("expected FullName detail, got %v", resp.Details)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := &mockBookingService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		},
	}
	h := NewBookingHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/booking/id/665f1c2d9b1e8a0001234567", nil)
	rec := httptest.NewRecorder()

	h.GetByID(rec, req, httprouter.Params{{Key: "id", Value: "665f1c2d9b1e8a0001234567"}})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestGetByHotelID_PassesRawValue(t *testing.T) {
	var got any
	svc := &mockBookingService{
		getByHotelIDFunc: func(ctx context.Context, hotelID any) ([]*model.Booking, error) {
			got = hotelID
			return []*model.Booking{}, nil
		},
	}
	h := NewBookingHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/getBookingByHotelID", bytes.NewBufferString(`{"hotelID":3}`))
	rec := httptest.NewRecorder()

	h.GetByHotelID(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if f, ok := got.(float64); !ok || f != 3 {
		t.Errorf("expected raw float64 3, got %#v", got)
	}
}

func TestCancel_ResponseShape(t *testing.T) {
	svc := &mockBookingService{
		cancelFunc: func(ctx context.Context, id string, canceledBy string) (*model.Booking, error) {
			return &model.Booking{StatusID: model.BookingStatusCancelled, CanceledBy: canceledBy}, nil
		},
	}
	h := NewBookingHandler(svc, testLogger())

	body := bytes.NewBufferString(`{"canceledBy":"manager"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/booking/soft/665f1c2d9b1e8a0001234567", body)
	rec := httptest.NewRecorder()

	h.Cancel(rec, req, httprouter.Params{{Key: "id", Value: "665f1c2d9b1e8a0001234567"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Message        string        `json:"message"`
		UpdatedBooking model.Booking `json:"updatedBooking"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.UpdatedBooking.StatusID != model.BookingStatusCancelled {
		t.Errorf("expected cancelled status, got %d", resp.UpdatedBooking.StatusID)
	}
	if resp.UpdatedBooking.CanceledBy != "manager" {
		t.Errorf("expected canceledBy manager, got %s", resp.UpdatedBooking.CanceledBy)
	}
}

func TestDelete_Message(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{}, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/booking/id/665f1c2d9b1e8a0001234567", nil)
	rec := httptest.NewRecorder()

	h.Delete(rec, req, httprouter.Params{{Key: "id", Value: "665f1c2d9b1e8a0001234567"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Booking deleted successfully" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
}
