package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"expense_tracker/internal/model"
	"expense_tracker/pkg/logger"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	created  *model.Transaction
	username string
	category string
	group    string
	filters  []sq.Sqlizer
	deleted  []uuid.UUID
	err      error
}

func (f *fakeService) Create(_ context.Context, tx *model.Transaction) (*model.Transaction, error) {
	f.created = tx
	out := *tx
	out.ID = uuid.MustParse("6f1c1e0e-2b7a-4d1c-9a43-3c2d1e0f9b10")
	out.Date = time.Date(2023, 4, 30, 12, 0, 0, 0, time.UTC)
	out.Color = "red"
	return &out, f.err
}

func (f *fakeService) List(context.Context) ([]model.Transaction, error) {
	return nil, f.err
}

func (f *fakeService) ListByUser(_ context.Context, username, category string, filters ...sq.Sqlizer) ([]model.Transaction, error) {
	f.username, f.category, f.filters = username, category, filters
	return []model.Transaction{}, f.err
}

func (f *fakeService) ListByGroup(_ context.Context, name, category string) ([]model.Transaction, error) {
	f.group, f.category = name, category
	return []model.Transaction{}, f.err
}

func (f *fakeService) Delete(_ context.Context, username string, id uuid.UUID) error {
	f.username = username
	f.deleted = []uuid.UUID{id}
	return f.err
}

func (f *fakeService) DeleteMany(_ context.Context, ids []uuid.UUID) (int64, error) {
	f.deleted = ids
	return int64(len(ids)), f.err
}

func newRouter(serv *fakeService) http.Handler {
	h := NewHandler(HandlerDeps{Serv: serv, Log: logger.NewNop()})
	r := chi.NewRouter()
	r.Post("/api/users/{username}/transactions", h.Create)
	r.Get("/api/users/{username}/transactions", h.ListByUser)
	r.Get("/api/users/{username}/transactions/category/{category}", h.ListByUserCategory)
	r.Get("/api/transactions/users/{username}", h.ListByUserUnfiltered)
	r.Get("/api/groups/{name}/transactions", h.ListByGroup)
	r.Get("/api/groups/{name}/transactions/category/{category}", h.ListByGroup)
	r.Delete("/api/users/{username}/transactions", h.Delete)
	r.Delete("/api/transactions", h.DeleteMany)
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestCreate(t *testing.T) {
	serv := &fakeService{}
	rec := do(newRouter(serv), http.MethodPost, "/api/users/alice/transactions",
		`{"username":"alice","amount":12.5,"type":"food"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, serv.created.Amount.Equal(decimal.RequireFromString("12.5")))
	assert.JSONEq(t, `{"data":{
		"_id":"6f1c1e0e-2b7a-4d1c-9a43-3c2d1e0f9b10",
		"username":"alice",
		"amount":12.5,
		"type":"food",
		"date":"2023-04-30T12:00:00Z",
		"color":"red"
	}}`, rec.Body.String())
}

func TestCreate_Validation(t *testing.T) {
	serv := &fakeService{}
	router := newRouter(serv)

	rec := do(router, http.MethodPost, "/api/users/alice/transactions", `{"username":"bob","amount":1,"type":"food"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodPost, "/api/users/alice/transactions", `{"username":"alice","type":"food"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodPost, "/api/users/alice/transactions", `{"username":"alice","amount":"abc","type":"food"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Nil(t, serv.created)
}

func TestListByUser_PassesFilters(t *testing.T) {
	serv := &fakeService{}
	rec := do(newRouter(serv), http.MethodGet, "/api/users/alice/transactions?from=2023-04-01&min=10", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
	assert.Equal(t, "alice", serv.username)
	require.Len(t, serv.filters, 2)

	sqlStr, _, err := sq.And(serv.filters).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "((t.date >= ?) AND (t.amount >= ?))", sqlStr)
}

func TestListByUser_BadFilters(t *testing.T) {
	serv := &fakeService{}
	router := newRouter(serv)

	rec := do(router, http.MethodGet, "/api/users/alice/transactions?date=2023-04-01&from=2023-04-01", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodGet, "/api/users/alice/transactions?min=ten", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Empty(t, serv.username)
}

func TestListByUserUnfiltered_IgnoresQuery(t *testing.T) {
	serv := &fakeService{}
	rec := do(newRouter(serv), http.MethodGet, "/api/transactions/users/alice?min=ten", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", serv.username)
	assert.Empty(t, serv.filters)
}

func TestListByCategory(t *testing.T) {
	serv := &fakeService{}
	router := newRouter(serv)

	rec := do(router, http.MethodGet, "/api/users/alice/transactions/category/food", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "food", serv.category)

	rec = do(router, http.MethodGet, "/api/groups/family/transactions/category/rent", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "family", serv.group)
	assert.Equal(t, "rent", serv.category)
}

func TestDelete(t *testing.T) {
	serv := &fakeService{}
	router := newRouter(serv)
	id := uuid.New()

	rec := do(router, http.MethodDelete, "/api/users/alice/transactions", `{"_id":"`+id.String()+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uuid.UUID{id}, serv.deleted)
	assert.Equal(t, "alice", serv.username)

	rec = do(router, http.MethodDelete, "/api/users/alice/transactions", `{"_id":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteMany(t *testing.T) {
	serv := &fakeService{}
	a, b := uuid.New(), uuid.New()

	rec := do(newRouter(serv), http.MethodDelete, "/api/transactions", `{"_ids":["`+a.String()+`","`+b.String()+`"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Count int64 `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body.Data.Count)
	assert.Equal(t, []uuid.UUID{a, b}, serv.deleted)
}
