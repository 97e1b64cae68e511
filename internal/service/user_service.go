package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-planner-api/internal/models"
	appErrors "github.com/noah-isme/academic-planner-api/pkg/errors"
)

// UserService manages the owner records behind every planner entity.
type UserService struct {
	repo   userRepository
	logger *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, logger: logger}
}

// Ensure creates the caller's user row when it does not exist yet.
func (s *UserService) Ensure(ctx context.Context, user models.UserContext) error {
	if user.UserID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "Missing user identity")
	}
	_, err := s.repo.FindByID(ctx, user.UserID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return appErrors.Internal(err, "Failed to load user")
	}
	record := &models.User{ID: user.UserID, Email: user.Email, Name: user.Name}
	if err := s.repo.Create(ctx, record); err != nil {
		return appErrors.Internal(err, "Failed to create user")
	}
	s.logger.Info("user created", zap.String("user_id", record.ID))
	return nil
}
