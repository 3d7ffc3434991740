package converter

import (
	"github.com/incorgnihealth/api/internal/delivery/dto"
	"github.com/incorgnihealth/api/internal/domain/entity"
)

// UserToResponse converts a User entity to its full profile DTO.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:             user.ID,
		PublicID:       user.PublicID,
		Role:           string(user.Role),
		Nickname:       user.Nickname,
		Avatar:         user.Avatar,
		Age:            user.Age,
		Sex:            user.Sex,
		IsOnline:       user.IsOnline,
		Specialization: user.Specialization,
		WalletBalance:  user.WalletBalance,
		CreatedAt:      user.CreatedAt,
	}
}

// UserToSummary converts a User entity to the anonymized embedded shape.
func UserToSummary(user *entity.User) *dto.UserSummary {
	if user == nil {
		return nil
	}

	return &dto.UserSummary{
		ID:             user.ID,
		PublicID:       user.PublicID,
		Nickname:       user.Nickname,
		Avatar:         user.Avatar,
		Age:            user.Age,
		Sex:            user.Sex,
		Specialization: user.Specialization,
	}
}

func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i, user := range users {
		resp := UserToResponse(&user)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
