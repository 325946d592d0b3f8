package converter

import (
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO. The role name
// is taken from the preloaded Role when present, otherwise mapped from the
// role id.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	roleName := user.Role.RoleName
	if roleName == "" {
		if role, ok := entity.RoleFromID(user.RoleID); ok {
			roleName = string(role)
		}
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      roleName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// UsersToResponses converts a slice of User entities.
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}
