package userRepo

import (
	"context"
	"errors"

	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

var ErrNotFound = errors.New("user not found")

// UserRepository defines read access to user accounts.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.User, error)
}
