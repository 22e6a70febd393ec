package auth

import (
	"net/http"

	"expense_tracker/internal/api/apierr"
	"expense_tracker/internal/api/cookie"
	dto "expense_tracker/internal/api/dto/auth"
	"expense_tracker/internal/config"
	"expense_tracker/internal/converter"
	"expense_tracker/internal/service"
	"expense_tracker/pkg/logger"
	"expense_tracker/pkg/req"
	"expense_tracker/pkg/resp"
)

type HandlerDeps struct {
	Serv      service.AuthService
	JWTConfig config.JWTConfig
	Log       *logger.Logger
}

type Handler struct {
	serv      service.AuthService
	jwtConfig config.JWTConfig
	log       *logger.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:      deps.Serv,
		jwtConfig: deps.JWTConfig,
		log:       deps.Log.Named("auth_api"),
	}
}

// Register создаёт обычного пользователя
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.RegisterRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	err = h.serv.Register(r.Context(), converter.RegisterRequestToUserModel(&requestBody))
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	resp.WriteData(w, http.StatusOK, dto.MessageResponse{Message: "User added successfully"}, "")
}

// RegisterAdmin создаёт администратора
func (h *Handler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.RegisterRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	err = h.serv.RegisterAdmin(r.Context(), converter.RegisterRequestToUserModel(&requestBody))
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	resp.WriteData(w, http.StatusOK, dto.MessageResponse{Message: "Admin added successfully"}, "")
}

// Login выдаёт пару токенов в теле ответа и через cookies
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	data, err := h.serv.Login(r.Context(), requestBody.Email, requestBody.Password)
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	cookie.SetAccessToken(w, data.AccessToken, h.jwtConfig.AccessTokenDuration())
	cookie.SetRefreshToken(w, data.RefreshToken, h.jwtConfig.RefreshTokenDuration())

	resp.WriteData(w, http.StatusOK, converter.ToLoginResponse(data), "")
}

// Logout отвязывает refresh токен из cookie и удаляет обе cookies
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	err := h.serv.Logout(r.Context(), cookie.Tokens(r).Refresh)
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	cookie.Clear(w)

	resp.WriteData(w, http.StatusOK, dto.MessageResponse{Message: "User logged out"}, "")
}
