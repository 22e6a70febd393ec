package category

import (
	"net/http"

	"expense_tracker/internal/api/apierr"
	dto "expense_tracker/internal/api/dto/category"
	"expense_tracker/internal/api/middleware"
	"expense_tracker/internal/converter"
	"expense_tracker/internal/service"
	"expense_tracker/pkg/logger"
	"expense_tracker/pkg/req"
	"expense_tracker/pkg/resp"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv service.CategoryService
	Log  *logger.Logger
}

type Handler struct {
	serv service.CategoryService
	log  *logger.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv: deps.Serv,
		log:  deps.Log.Named("category_api"),
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.CategoryRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	category := converter.ToCategory(requestBody)
	if err := h.serv.Create(r.Context(), category); err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	resp.WriteData(w, http.StatusOK,
		dto.CategoryResponse{Type: category.Type, Color: category.Color},
		middleware.RefreshedMessage(r.Context()))
}

// Update переименовывает категорию {type}; транзакции переносятся
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.CategoryRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	count, err := h.serv.Update(r.Context(), chi.URLParam(r, "type"), converter.ToCategory(requestBody))
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	resp.WriteData(w, http.StatusOK,
		dto.CountResponse{Message: "Category edited successfully", Count: count},
		middleware.RefreshedMessage(r.Context()))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.DeleteRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	count, err := h.serv.Delete(r.Context(), requestBody.Types)
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	resp.WriteData(w, http.StatusOK,
		dto.CountResponse{Message: "Categories deleted", Count: count},
		middleware.RefreshedMessage(r.Context()))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.serv.List(r.Context())
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	resp.WriteData(w, http.StatusOK, converter.ToCategoryResponses(categories), middleware.RefreshedMessage(r.Context()))
}
