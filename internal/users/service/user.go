package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	userserrors "hotelier/internal/users/errors"
	"hotelier/internal/users/repository"
	"hotelier/internal/users/validator"
	"hotelier/pkg/auth"
	"hotelier/pkg/config"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/model"
)

type LoginResult struct {
	Token string               `json:"token"`
	User  model.UserProjection `json:"user"`
}

type HardDeleteResult struct {
	DeletedBy string    `json:"deletedBy"`
	DeletedAt time.Time `json:"deletedAt"`
}

type UserService interface {
	Register(ctx context.Context, user *model.User) (model.UserProjection, error)
	Login(ctx context.Context, loginID, password string) (*LoginResult, error)
	GetAll(ctx context.Context) ([]model.UserProjection, error)
	Update(ctx context.Context, id string, update *model.UserUpdate) (model.UserProjection, error)
	SoftDelete(ctx context.Context, id string) (model.UserProjection, error)
	HardDelete(ctx context.Context, id, deletedBy string) (*HardDeleteResult, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	issuer    *auth.Issuer
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	validator *validator.UserValidator,
	issuer *auth.Issuer,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		issuer:    issuer,
		cfg:       cfg,
	}
}

func (s *userService) Register(ctx context.Context, user *model.User) (model.UserProjection, error) {
	if missing := s.validator.MissingRegistrationFields(user); len(missing) > 0 {
		return model.UserProjection{}, apperrors.Validation(
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")), nil)
	}
	if err := s.validator.ValidateRegistration(user); err != nil {
		return model.UserProjection{}, s.translateValidation(err)
	}

	// Collisions on the 4-digit suffix are left to the unique index.
	user.LoginID = fmt.Sprintf("%s-%04d", s.cfg.LoginIDPrefix, rand.Intn(10000))

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		s.cfg.Log.Error("Failed to hash password", "error", err)
		return model.UserProjection{}, apperrors.Internal("Failed to register user", err)
	}
	user.Password = string(hashed)

	if user.StatusID == 0 {
		user.StatusID = model.UserStatusActive
	}

	if err := s.repo.Create(ctx, user); err != nil {
		var dup *repository.DuplicateKeyError
		if errors.As(err, &dup) {
			return model.UserProjection{}, apperrors.DuplicateKey(strings.Join(dup.Fields, ", "))
		}
		s.cfg.Log.Error("Failed to create user", "error", err)
		return model.UserProjection{}, apperrors.Internal("Failed to register user", err)
	}

	s.cfg.Log.Info("User registered", "id", user.ID, "login_id", user.LoginID, "username", user.Username)
	return user.Sanitize(), nil
}

func (s *userService) Login(ctx context.Context, loginID, password string) (*LoginResult, error) {
	// Unknown loginID and wrong password return the same generic error so
	// the endpoint cannot be used to enumerate accounts.
	user, err := s.repo.FindByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.InvalidInput(userserrors.ErrInvalidCredentials.Error())
		}
		s.cfg.Log.Error("Failed to look up user for login", "error", err)
		return nil, apperrors.Internal("Failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.InvalidInput(userserrors.ErrInvalidCredentials.Error())
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "error", err)
		return nil, apperrors.Internal("Failed to log in", err)
	}

	s.cfg.Log.Info("User logged in", "id", user.ID, "login_id", user.LoginID)
	return &LoginResult{Token: token, User: user.Sanitize()}, nil
}

func (s *userService) GetAll(ctx context.Context) ([]model.UserProjection, error) {
	users, err := s.repo.FindAllActive(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}

	projections := make([]model.UserProjection, 0, len(users))
	for _, u := range users {
		projections = append(projections, u.Sanitize())
	}
	return projections, nil
}

func (s *userService) Update(ctx context.Context, id string, update *model.UserUpdate) (model.UserProjection, error) {
	if err := s.validator.ValidateUpdate(update); err != nil {
		return model.UserProjection{}, s.translateValidation(err)
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.UserProjection{}, s.translateLookup(err, id)
	}

	applyUpdate(user, update)

	if err := s.repo.Replace(ctx, id, user); err != nil {
		var dup *repository.DuplicateKeyError
		if errors.As(err, &dup) {
			return model.UserProjection{}, apperrors.DuplicateKey(strings.Join(dup.Fields, ", "))
		}
		if errors.Is(err, userserrors.ErrNotFound) {
			return model.UserProjection{}, apperrors.NotFoundWithID("User", id)
		}
		s.cfg.Log.Error("Failed to update user", "id", id, "error", err)
		return model.UserProjection{}, apperrors.Internal("Failed to update user", err)
	}

	s.cfg.Log.Info("User updated", "id", id)
	return user.Sanitize(), nil
}

func (s *userService) SoftDelete(ctx context.Context, id string) (model.UserProjection, error) {
	user, err := s.repo.SetStatus(ctx, id, model.UserStatusDeleted)
	if err != nil {
		return model.UserProjection{}, s.translateLookup(err, id)
	}

	s.cfg.Log.Info("User soft-deleted", "id", id)
	return user.Sanitize(), nil
}

func (s *userService) HardDelete(ctx context.Context, id, deletedBy string) (*HardDeleteResult, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, apperrors.InvalidInput("Invalid user ID format")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, s.translateLookup(err, id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		s.cfg.Log.Error("Failed to delete user", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to delete user", err)
	}

	s.cfg.Log.Info("User hard-deleted", "id", id, "deleted_by", deletedBy)
	return &HardDeleteResult{
		DeletedBy: deletedBy,
		DeletedAt: time.Now().UTC().Truncate(time.Millisecond),
	}, nil
}

func applyUpdate(user *model.User, update *model.UserUpdate) {
	if update.Image != "" {
		user.Image = update.Image
	}
	if update.Username != "" {
		user.Username = update.Username
	}
	if update.Gender != "" {
		user.Gender = update.Gender
	}
	if update.Email != "" {
		user.Email = update.Email
	}
	if update.PhoneNumber != "" {
		user.PhoneNumber = update.PhoneNumber
	}
	if update.NID != "" {
		user.NID = update.NID
	}
	if update.CurrentAddress != "" {
		user.CurrentAddress = update.CurrentAddress
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
}

func (s *userService) translateValidation(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return apperrors.Validation("User validation failed", validationErrs.Fields())
	}
	return apperrors.Validation(err.Error(), nil)
}

func (s *userService) translateLookup(err error, id string) error {
	if errors.Is(err, userserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("User", id)
	}
	if errors.Is(err, userserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid user ID format")
	}
	s.cfg.Log.Error("Failed to retrieve user", "id", id, "error", err)
	return apperrors.Internal("Failed to retrieve user", err)
}
