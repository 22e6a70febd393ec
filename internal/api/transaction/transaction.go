package transaction

import (
	"fmt"
	"net/http"

	"expense_tracker/internal/api/apierr"
	dto "expense_tracker/internal/api/dto/transaction"
	"expense_tracker/internal/api/middleware"
	"expense_tracker/internal/converter"
	"expense_tracker/internal/filter"
	"expense_tracker/internal/model"
	"expense_tracker/internal/service"
	"expense_tracker/pkg/logger"
	"expense_tracker/pkg/req"
	"expense_tracker/pkg/resp"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type HandlerDeps struct {
	Serv service.TransactionService
	Log  *logger.Logger
}

type Handler struct {
	serv service.TransactionService
	log  *logger.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv: deps.Serv,
		log:  deps.Log.Named("transaction_api"),
	}
}

// Create - транзакция пользователя {username}; username в теле должен совпадать
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.CreateRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if !requestBody.Amount.Valid {
		apierr.Write(w, r, h.log, fmt.Errorf("%w: amount is required", model.ErrValidation))
		return
	}
	if requestBody.Username != chi.URLParam(r, "username") {
		apierr.Write(w, r, h.log, fmt.Errorf("%w: username does not match the route", model.ErrValidation))
		return
	}

	tx, err := h.serv.Create(r.Context(), converter.ToTransaction(requestBody))
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	resp.WriteData(w, http.StatusOK, converter.ToTransactionResponse(tx), middleware.RefreshedMessage(r.Context()))
}

// List - все транзакции (администратор)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	txs, err := h.serv.List(r.Context())
	h.writeList(w, r, txs, err)
}

// ListByUser - транзакции {username} с фильтрами по дате и сумме из query
func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	date, err := filter.DateFilter(r.URL.Query())
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}
	amount, err := filter.AmountFilter(r.URL.Query())
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	txs, err := h.serv.ListByUser(r.Context(), chi.URLParam(r, "username"), "", date, amount)
	h.writeList(w, r, txs, err)
}

// ListByUserUnfiltered - транзакции {username} для администратора, без фильтров
func (h *Handler) ListByUserUnfiltered(w http.ResponseWriter, r *http.Request) {
	txs, err := h.serv.ListByUser(r.Context(), chi.URLParam(r, "username"), "")
	h.writeList(w, r, txs, err)
}

func (h *Handler) ListByUserCategory(w http.ResponseWriter, r *http.Request) {
	txs, err := h.serv.ListByUser(r.Context(), chi.URLParam(r, "username"), chi.URLParam(r, "category"))
	h.writeList(w, r, txs, err)
}

// ListByGroup - транзакции участников {name}; {category} необязателен
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	txs, err := h.serv.ListByGroup(r.Context(), chi.URLParam(r, "name"), chi.URLParam(r, "category"))
	h.writeList(w, r, txs, err)
}

// Delete - одна транзакция владельца {username}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.DeleteRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}
	id, err := parseID(requestBody.ID)
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	if err := h.serv.Delete(r.Context(), chi.URLParam(r, "username"), id); err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	resp.WriteData(w, http.StatusOK, dto.MessageResponse{Message: "Transaction deleted"}, middleware.RefreshedMessage(r.Context()))
}

// DeleteMany - несколько транзакций (администратор), все или ни одной
func (h *Handler) DeleteMany(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.DeleteManyRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	ids := make([]uuid.UUID, 0, len(requestBody.IDs))
	for _, raw := range requestBody.IDs {
		id, err := parseID(raw)
		if err != nil {
			apierr.Write(w, r, h.log, err)
			return
		}
		ids = append(ids, id)
	}

	count, err := h.serv.DeleteMany(r.Context(), ids)
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}

	resp.WriteData(w, http.StatusOK,
		dto.MessageResponse{Message: "Transactions deleted", Count: count},
		middleware.RefreshedMessage(r.Context()))
}

func (h *Handler) writeList(w http.ResponseWriter, r *http.Request, txs []model.Transaction, err error) {
	if err != nil {
		apierr.Write(w, r, h.log, err)
		return
	}
	resp.WriteData(w, http.StatusOK, converter.ToTransactionResponses(txs), middleware.RefreshedMessage(r.Context()))
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid transaction id %q", model.ErrValidation, raw)
	}
	return id, nil
}
