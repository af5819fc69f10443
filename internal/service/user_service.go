package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type UserService struct {
	userRepo   UserStore
	driverRepo DriverStore
}

func NewUserService(userRepo UserStore, driverRepo DriverStore) *UserService {
	return &UserService{
		userRepo:   userRepo,
		driverRepo: driverRepo,
	}
}

// LoadPrincipal turns a verified identity into a principal. Users seen for
// the first time are stored with the driver role.
func (s *UserService) LoadPrincipal(ctx context.Context, userID uuid.UUID, email string) (model.Principal, error) {
	candidate := &model.User{ID: userID, Role: model.RoleDriver}
	if email = strings.TrimSpace(email); email != "" {
		candidate.Email = &email
	}

	user, err := s.userRepo.Upsert(ctx, candidate)
	if errors.Is(err, gorm.ErrDuplicatedKey) && candidate.Email != nil {
		// The address belongs to another account; keep whatever is stored.
		candidate.Email = nil
		user, err = s.userRepo.Upsert(ctx, candidate)
	}
	if err != nil {
		return model.Principal{}, err
	}

	principal := model.Principal{
		UserID: user.ID,
		Role:   user.Role,
	}
	if user.Email != nil {
		principal.Email = *user.Email
	}

	driver, err := s.driverRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return model.Principal{}, err
	}
	if driver != nil {
		principal.DriverID = &driver.ID
	}

	return principal, nil
}

type CurrentUser struct {
	model.User
	DriverProfile *model.Driver `json:"driver_profile"`
}

func (s *UserService) Current(ctx context.Context, principal model.Principal) (*CurrentUser, error) {
	user, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, translateStoreError(err)
	}

	result := &CurrentUser{User: *user}
	if principal.DriverID != nil {
		driver, err := s.driverRepo.GetByID(ctx, *principal.DriverID)
		if err != nil {
			return nil, translateStoreError(err)
		}
		result.DriverProfile = driver
	}

	return result, nil
}

func (s *UserService) List(ctx context.Context, principal model.Principal) ([]model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.userRepo.List(ctx)
}

func (s *UserService) UpdateRole(ctx context.Context, principal model.Principal, id string, role string) (*model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	userID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	newRole := model.Role(strings.ToLower(strings.TrimSpace(role)))
	if !newRole.Valid() {
		return nil, invalidInput("unknown role %q", role)
	}

	if err := s.userRepo.UpdateRole(ctx, userID, newRole); err != nil {
		return nil, translateStoreError(err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return user, nil
}
