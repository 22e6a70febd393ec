package converter

import (
	"expense_tracker/internal/api/dto/user"
	"expense_tracker/internal/model"
)

func ToUserResponse(u *model.User) user.UserResponse {
	return user.UserResponse{
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}

func ToUserResponses(users []model.User) []user.UserResponse {
	result := make([]user.UserResponse, len(users))
	for i := range users {
		result[i] = ToUserResponse(&users[i])
	}
	return result
}

func ToDeleteUserResponse(d *model.DeletedUser) user.DeleteResponse {
	return user.DeleteResponse{
		DeletedTransactions: d.DeletedTransactions,
		DeletedFromGroup:    d.DeletedFromGroup,
	}
}
