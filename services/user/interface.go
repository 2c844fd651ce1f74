package user

import (
	"context"

	userRepo "salonbook/database/repository/user"
	"salonbook/models"
)

// UserService is the read-only user directory consumed by bookings and notifications.
type UserService interface {
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
