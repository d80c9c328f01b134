package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-bookshelf/internal/config"
	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/MKhiriev/go-bookshelf/internal/store"
	"github.com/MKhiriev/go-bookshelf/internal/utils"
	"github.com/MKhiriev/go-bookshelf/models"
)

type userService struct {
	userRepository store.UserRepository
	ids            IDGenerator

	// hashCost is the bcrypt cost of stored passwords.
	hashCost int

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, ids IDGenerator, cfg config.App, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		ids:            ids,
		hashCost:       cfg.PasswordHashCost,
		logger:         logger,
	}
}

func (s *userService) ListUsers(ctx context.Context, params models.ListParams) (models.UserPage, error) {
	params = normalizeListParams(params, userSortFields)

	users, total, err := s.userRepository.ListUsers(ctx, params)
	if err != nil {
		return models.UserPage{}, fmt.Errorf("error listing users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}

	return models.UserPage{
		TotalCount: total,
		Limit:      params.Limit,
		Offset:     params.Offset,
		Sort:       params.Sort,
		Order:      params.Order,
		SearchKey:  params.SearchKey,
		Users:      users,
	}, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.userRepository.FindUserByID(ctx, id)
}

// CreateUser hashes the password and persists a new user. The request is
// expected to be validated by the wrapping validation service.
func (s *userService) CreateUser(ctx context.Context, request models.UserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if request.Password == nil || request.Email == nil {
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := utils.HashPassword(*request.Password, s.hashCost)
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return models.User{}, err
	}

	user := models.User{
		ID:       s.ids.Generate(),
		Email:    *request.Email,
		Password: hash,
	}
	if request.FirstName != nil {
		user.FirstName = *request.FirstName
	}
	if request.LastName != nil {
		user.LastName = *request.LastName
	}
	if request.Suspended != nil {
		user.Suspended = *request.Suspended
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}

// UpdateUser changes the fields set on request. A new password is hashed
// before it is stored.
func (s *userService) UpdateUser(ctx context.Context, id string, request models.UserRequest) (models.User, error) {
	update := models.UserUpdate{
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     request.Email,
		Suspended: request.Suspended,
	}

	if request.Password != nil {
		hash, err := utils.HashPassword(*request.Password, s.hashCost)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("id", id).Msg("error hashing password")
			return models.User{}, err
		}
		update.Password = &hash
	}

	updated, err := s.userRepository.UpdateUser(ctx, id, update)
	if err != nil {
		return models.User{}, fmt.Errorf("error updating user: %w", err)
	}

	return updated, nil
}

// DeleteUser removes the user. Books written by the user keep their author
// reference.
func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if err := s.userRepository.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	return nil
}

func (s *userService) SetSuspended(ctx context.Context, id string, suspended bool) (models.User, error) {
	updated, err := s.userRepository.UpdateUser(ctx, id, models.UserUpdate{Suspended: &suspended})
	if err != nil {
		return models.User{}, fmt.Errorf("error changing suspension of user: %w", err)
	}

	logger.FromContext(ctx).Info().Str("id", id).Bool("suspended", suspended).Msg("user suspension changed")

	return updated, nil
}
