package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"hotelier/internal/catalog/repository"
	"hotelier/pkg/config"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

type mockStore[T any] struct {
	createFunc    func(ctx context.Context, record *T) (string, error)
	findByIDFunc  func(ctx context.Context, id string) (*T, error)
	findAllFunc   func(ctx context.Context) ([]*T, error)
	replaceFunc   func(ctx context.Context, id string, record *T) error
	deleteFunc    func(ctx context.Context, id string) error
	nextSeqIDFunc func(ctx context.Context) (int, error)
}

func (m *mockStore[T]) Create(ctx context.Context, record *T) (string, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, record)
	}
	return "665f1c2d9b1e8a0001234567", nil
}

func (m *mockStore[T]) FindByID(ctx context.Context, id string) (*T, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockStore[T]) FindAll(ctx context.Context) ([]*T, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*T{}, nil
}

func (m *mockStore[T]) Replace(ctx context.Context, id string, record *T) error {
	if m.replaceFunc != nil {
		return m.replaceFunc(ctx, id, record)
	}
	return nil
}

func (m *mockStore[T]) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockStore[T]) NextSeqID(ctx context.Context) (int, error) {
	if m.nextSeqIDFunc != nil {
		return m.nextSeqIDFunc(ctx)
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

func TestHotelCategoryCreate_FirstSeqIDIsZero(t *testing.T) {
	s := &mockStore[model.HotelCategory]{
		nextSeqIDFunc: func(ctx context.Context) (int, error) { return 0, nil },
	}
	resource := NewHotelCategoryResource(s, testConfig())

	category := &model.HotelCategory{Name: "Resort"}
	if err := resource.Create(context.Background(), category); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if category.SeqID != 0 {
		t.Errorf("expected first seq id 0, got %d", category.SeqID)
	}
	if category.ID != "665f1c2d9b1e8a0001234567" {
		t.Errorf("expected generated ID set, got %q", category.ID)
	}
	if category.CreateTime.IsZero() || category.CreatedAt.IsZero() {
		t.Error("expected timestamps to be stamped")
	}
}

func TestHotelCategoryCreate_MissingName(t *testing.T) {
	resource := NewHotelCategoryResource(&mockStore[model.HotelCategory]{}, testConfig())

	err := resource.Create(context.Background(), &model.HotelCategory{Description: "no name"})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRoomTypeCreate_IncrementsSeqID(t *testing.T) {
	s := &mockStore[model.RoomType]{
		nextSeqIDFunc: func(ctx context.Context) (int, error) { return 7, nil },
	}
	resource := NewRoomTypeResource(s, testConfig())

	rt := &model.RoomType{Name: "Twin"}
	if err := resource.Create(context.Background(), rt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt.SeqID != 7 {
		t.Errorf("expected seq id 7, got %d", rt.SeqID)
	}
}

func TestPortfolioUpdate_MergesPatch(t *testing.T) {
	existing := &model.Portfolio{
		ID:      "665f1c2d9b1e8a0001234567",
		Image:   "https://cdn.example.com/old.jpg",
		Title:   "Lobby",
		Details: "Main lobby shot",
	}

	s := &mockStore[model.Portfolio]{
		findByIDFunc: func(ctx context.Context, id string) (*model.Portfolio, error) {
			return existing, nil
		},
	}
	resource := NewPortfolioResource(s, testConfig())

	updated, err := resource.Update(context.Background(), existing.ID, json.RawMessage(`{"title":"Grand Lobby"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Title != "Grand Lobby" {
		t.Errorf("expected patched title, got %s", updated.Title)
	}
	if updated.Image != "https://cdn.example.com/old.jpg" {
		t.Errorf("expected untouched image, got %s", updated.Image)
	}
	if updated.ID != existing.ID {
		t.Errorf("expected ID preserved, got %s", updated.ID)
	}
}

func TestServiceDelete_NotFound(t *testing.T) {
	s := &mockStore[model.Service]{
		deleteFunc: func(ctx context.Context, id string) error {
			return repository.ErrNotFound
		},
	}
	resource := NewServiceResource(s, testConfig())

	err := resource.Delete(context.Background(), "665f1c2d9b1e8a0001234567")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestServiceCreate_RequiresPackageFields(t *testing.T) {
	resource := NewServiceResource(&mockStore[model.Service]{}, testConfig())

	svc := &model.Service{
		Image: "https://cdn.example.com/spa.jpg",
		Title: "Spa",
		Packages: []model.ServicePackage{
			{Name: "", Price: 100},
		},
	}
	err := resource.Create(context.Background(), svc)
	if err == nil {
		t.Fatal("expected validation error for empty package name, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}
