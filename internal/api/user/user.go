package user

import (
	"net/http"

	"expense_tracker/internal/api/apierr"
	dto "expense_tracker/internal/api/dto/user"
	"expense_tracker/internal/api/middleware"
	"expense_tracker/internal/converter"
	"expense_tracker/internal/service"
	"expense_tracker/pkg/logger"
	"expense_tracker/pkg/req"
	"expense_tracker/pkg/resp"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv service.UserService
	Log  *logger.Logger
}

type Handler struct {
	serv service.UserService
	log  *logger.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv: deps.Serv,
		log:  deps.Log.Named("user_api"),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.serv.List(r.Context())
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	resp.WriteData(w, http.StatusOK, converter.ToUserResponses(users), middleware.RefreshedMessage(r.Context()))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.serv.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	resp.WriteData(w, http.StatusOK, converter.ToUserResponse(user), middleware.RefreshedMessage(r.Context()))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.DeleteRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	deleted, err := h.serv.Delete(r.Context(), requestBody.Email)
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	resp.WriteData(w, http.StatusOK, converter.ToDeleteUserResponse(deleted), middleware.RefreshedMessage(r.Context()))
}
