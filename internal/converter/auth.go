package converter

import (
	"expense_tracker/internal/api/dto/auth"
	"expense_tracker/internal/model"
)

func RegisterRequestToUserModel(req *auth.RegisterRequest) *model.User {
	return &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
}

func ToLoginResponse(data *model.AuthData) auth.LoginResponse {
	return auth.LoginResponse{
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
	}
}
