package user

import (
	"context"
	"fmt"

	"salonbook/models"
)

// GetUserByID returns the user without credential fields.
func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}
