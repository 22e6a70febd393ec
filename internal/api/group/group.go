package group

import (
	"net/http"

	"expense_tracker/internal/api/apierr"
	dto "expense_tracker/internal/api/dto/group"
	"expense_tracker/internal/api/middleware"
	"expense_tracker/internal/converter"
	"expense_tracker/internal/service"
	"expense_tracker/pkg/logger"
	"expense_tracker/pkg/req"
	"expense_tracker/pkg/resp"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv service.GroupService
	Log  *logger.Logger
}

type Handler struct {
	serv service.GroupService
	log  *logger.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv: deps.Serv,
		log:  deps.Log.Named("group_api"),
	}
}

// Create - группа вызывающего пользователя
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.CreateRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	change, err := h.serv.Create(r.Context(), middleware.Caller(r.Context()), requestBody.Name, requestBody.MemberEmails)
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	resp.WriteData(w, http.StatusOK, converter.ToAddResponse(change), middleware.RefreshedMessage(r.Context()))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.serv.List(r.Context())
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	resp.WriteData(w, http.StatusOK, converter.ToGroupResponses(groups), middleware.RefreshedMessage(r.Context()))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	group, err := h.serv.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	resp.WriteData(w, http.StatusOK, converter.ToGroupResponse(group), middleware.RefreshedMessage(r.Context()))
}

// AddMembers обслуживает /add и /insert
func (h *Handler) AddMembers(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.EmailsRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	change, err := h.serv.AddMembers(r.Context(), chi.URLParam(r, "name"), requestBody.Emails)
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	resp.WriteData(w, http.StatusOK, converter.ToAddResponse(change), middleware.RefreshedMessage(r.Context()))
}

// RemoveMembers обслуживает /remove и /pull
func (h *Handler) RemoveMembers(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.EmailsRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	change, err := h.serv.RemoveMembers(r.Context(), chi.URLParam(r, "name"), requestBody.Emails)
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	resp.WriteData(w, http.StatusOK, converter.ToRemoveResponse(change), middleware.RefreshedMessage(r.Context()))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.DeleteRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.serv.Delete(r.Context(), requestBody.Name); err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	resp.WriteData(w, http.StatusOK, dto.MessageResponse{Message: "Group deleted"}, middleware.RefreshedMessage(r.Context()))
}
