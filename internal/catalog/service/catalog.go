package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"hotelier/internal/catalog/repository"
	"hotelier/pkg/config"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/model"
)

// store abstracts the generic catalog persistence layer for testing.
type store[T any] interface {
	Create(ctx context.Context, record *T) (string, error)
	FindByID(ctx context.Context, id string) (*T, error)
	FindAll(ctx context.Context) ([]*T, error)
	Replace(ctx context.Context, id string, record *T) error
	Delete(ctx context.Context, id string) error
	NextSeqID(ctx context.Context) (int, error)
}

// Resource implements the uniform catalog lifecycle for one record type:
// create with timestamps, unfiltered list, merge-update, hard delete.
// The hooks carry the per-type differences (sequential IDs, ID plumbing).
type Resource[T any] struct {
	store    store[T]
	validate *validator.Validate
	cfg      *config.Config
	name     string

	// beforeCreate stamps timestamps and, where the type carries one,
	// the sequential numeric id.
	beforeCreate func(ctx context.Context, record *T) error
	setID        func(record *T, id string)
	clearID      func(record *T)
	touch        func(record *T, now time.Time)
}

func (r *Resource[T]) Create(ctx context.Context, record *T) error {
	if err := r.validate.Struct(record); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			details := make(map[string]any, len(validationErrs))
			for _, fe := range validationErrs {
				details[fe.Field()] = fe.Tag()
			}
			return apperrors.Validation(r.name+" validation failed", details)
		}
		return apperrors.Validation(err.Error(), nil)
	}

	if err := r.beforeCreate(ctx, record); err != nil {
		r.cfg.Log.Error("Failed to prepare "+r.name, "error", err)
		return apperrors.Internal("Failed to create "+r.name, err)
	}

	id, err := r.store.Create(ctx, record)
	if err != nil {
		r.cfg.Log.Error("Failed to create "+r.name, "error", err)
		return apperrors.Internal("Failed to create "+r.name, err)
	}
	r.setID(record, id)

	r.cfg.Log.Info(r.name+" created", "id", id)
	return nil
}

func (r *Resource[T]) GetAll(ctx context.Context) ([]*T, error) {
	records, err := r.store.FindAll(ctx)
	if err != nil {
		r.cfg.Log.Error("Failed to list "+r.name, "error", err)
		return nil, apperrors.Internal("Failed to retrieve "+r.name, err)
	}
	if records == nil {
		records = []*T{}
	}
	return records, nil
}

func (r *Resource[T]) Update(ctx context.Context, id string, patch json.RawMessage) (*T, error) {
	record, err := r.store.FindByID(ctx, id)
	if err != nil {
		return nil, r.translateLookup(err, id)
	}

	if err := json.Unmarshal(patch, record); err != nil {
		return nil, apperrors.InvalidInput("Invalid " + r.name + " payload")
	}
	r.clearID(record)
	r.touch(record, time.Now().UTC().Truncate(time.Millisecond))

	if err := r.store.Replace(ctx, id, record); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFoundWithID(r.name, id)
		}
		r.cfg.Log.Error("Failed to update "+r.name, "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update "+r.name, err)
	}
	r.setID(record, id)

	r.cfg.Log.Info(r.name+" updated", "id", id)
	return record, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFoundWithID(r.name, id)
		}
		if errors.Is(err, repository.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid " + r.name + " ID format")
		}
		r.cfg.Log.Error("Failed to delete "+r.name, "id", id, "error", err)
		return apperrors.Internal("Failed to delete "+r.name, err)
	}

	r.cfg.Log.Info(r.name+" deleted", "id", id)
	return nil
}

func (r *Resource[T]) translateLookup(err error, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFoundWithID(r.name, id)
	}
	if errors.Is(err, repository.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid " + r.name + " ID format")
	}
	return apperrors.Internal("Failed to retrieve "+r.name, err)
}

// CatalogService bundles the four catalog resources.
type CatalogService struct {
	HotelCategories *Resource[model.HotelCategory]
	RoomTypes       *Resource[model.RoomType]
	Services        *Resource[model.Service]
	Portfolios      *Resource[model.Portfolio]
}

func NewCatalogService(cfg *config.Config) *CatalogService {
	return &CatalogService{
		HotelCategories: NewHotelCategoryResource(repository.NewStore[model.HotelCategory](cfg, repository.HotelCategoryCollection), cfg),
		RoomTypes:       NewRoomTypeResource(repository.NewStore[model.RoomType](cfg, repository.RoomTypeCollection), cfg),
		Services:        NewServiceResource(repository.NewStore[model.Service](cfg, repository.ServiceCollection), cfg),
		Portfolios:      NewPortfolioResource(repository.NewStore[model.Portfolio](cfg, repository.PortfolioCollection), cfg),
	}
}

func NewHotelCategoryResource(s store[model.HotelCategory], cfg *config.Config) *Resource[model.HotelCategory] {
	return &Resource[model.HotelCategory]{
		store:    s,
		validate: validator.New(),
		cfg:      cfg,
		name:     "Hotel category",
		beforeCreate: func(ctx context.Context, c *model.HotelCategory) error {
			seq, err := s.NextSeqID(ctx)
			if err != nil {
				return err
			}
			c.SeqID = seq
			now := time.Now().UTC().Truncate(time.Millisecond)
			if c.CreateTime.IsZero() {
				c.CreateTime = now
			}
			c.CreatedAt = now
			c.UpdatedAt = now
			return nil
		},
		setID:   func(c *model.HotelCategory, id string) { c.ID = id },
		clearID: func(c *model.HotelCategory) { c.ID = "" },
		touch:   func(c *model.HotelCategory, now time.Time) { c.UpdatedAt = now },
	}
}

func NewRoomTypeResource(s store[model.RoomType], cfg *config.Config) *Resource[model.RoomType] {
	return &Resource[model.RoomType]{
		store:    s,
		validate: validator.New(),
		cfg:      cfg,
		name:     "Room type",
		beforeCreate: func(ctx context.Context, rt *model.RoomType) error {
			seq, err := s.NextSeqID(ctx)
			if err != nil {
				return err
			}
			rt.SeqID = seq
			now := time.Now().UTC().Truncate(time.Millisecond)
			if rt.CreateTime.IsZero() {
				rt.CreateTime = now
			}
			rt.CreatedAt = now
			rt.UpdatedAt = now
			return nil
		},
		setID:   func(rt *model.RoomType, id string) { rt.ID = id },
		clearID: func(rt *model.RoomType) { rt.ID = "" },
		touch:   func(rt *model.RoomType, now time.Time) { rt.UpdatedAt = now },
	}
}

func NewServiceResource(s store[model.Service], cfg *config.Config) *Resource[model.Service] {
	return &Resource[model.Service]{
		store:    s,
		validate: validator.New(),
		cfg:      cfg,
		name:     "Service",
		beforeCreate: func(ctx context.Context, sv *model.Service) error {
			now := time.Now().UTC().Truncate(time.Millisecond)
			sv.CreatedAt = now
			sv.UpdatedAt = now
			return nil
		},
		setID:   func(sv *model.Service, id string) { sv.ID = id },
		clearID: func(sv *model.Service) { sv.ID = "" },
		touch:   func(sv *model.Service, now time.Time) { sv.UpdatedAt = now },
	}
}

func NewPortfolioResource(s store[model.Portfolio], cfg *config.Config) *Resource[model.Portfolio] {
	return &Resource[model.Portfolio]{
		store:    s,
		validate: validator.New(),
		cfg:      cfg,
		name:     "Portfolio",
		beforeCreate: func(ctx context.Context, p *model.Portfolio) error {
			now := time.Now().UTC().Truncate(time.Millisecond)
			p.CreatedAt = now
			p.UpdatedAt = now
			return nil
		},
		setID:   func(p *model.Portfolio, id string) { p.ID = id },
		clearID: func(p *model.Portfolio) { p.ID = "" },
		touch:   func(p *model.Portfolio, now time.Time) { p.UpdatedAt = now },
	}
}
