package group

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"expense_tracker/internal/model"
	"expense_tracker/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var family = &model.Group{
	Name:    "family",
	Members: []model.Member{{Email: "alice@example.com", UserID: 1}},
}

type fakeService struct {
	name   string
	emails []string
	err    error
}

func (f *fakeService) Create(_ context.Context, _ model.Identity, name string, emails []string) (*model.GroupChange, error) {
	f.name, f.emails = name, emails
	if f.err != nil {
		return nil, f.err
	}
	return &model.GroupChange{Group: family, MembersNotFound: []string{"ghost@example.com"}}, nil
}

func (f *fakeService) Get(_ context.Context, name string) (*model.Group, error) {
	f.name = name
	return family, f.err
}

func (f *fakeService) List(context.Context) ([]model.Group, error) {
	return []model.Group{*family}, f.err
}

func (f *fakeService) Members(context.Context, string) ([]string, error) {
	return family.Emails(), f.err
}

func (f *fakeService) AddMembers(_ context.Context, name string, emails []string) (*model.GroupChange, error) {
	f.name, f.emails = name, emails
	return &model.GroupChange{Group: family}, f.err
}

func (f *fakeService) RemoveMembers(_ context.Context, name string, emails []string) (*model.GroupChange, error) {
	f.name, f.emails = name, emails
	return &model.GroupChange{Group: family, NotInGroup: []string{"bob@example.com"}}, f.err
}

func (f *fakeService) Delete(_ context.Context, name string) error {
	f.name = name
	return f.err
}

func newRouter(serv *fakeService) http.Handler {
	h := NewHandler(HandlerDeps{Serv: serv, Log: logger.NewNop()})
	r := chi.NewRouter()
	r.Post("/api/groups", h.Create)
	r.Get("/api/groups", h.List)
	r.Get("/api/groups/{name}", h.Get)
	r.Patch("/api/groups/{name}/add", h.AddMembers)
	r.Patch("/api/groups/{name}/remove", h.RemoveMembers)
	r.Delete("/api/groups", h.Delete)
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestCreate(t *testing.T) {
	serv := &fakeService{}
	rec := do(newRouter(serv), http.MethodPost, "/api/groups", `{"name":"family","memberEmails":["ghost@example.com"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "family", serv.name)
	assert.JSONEq(t, `{"data":{
		"group":{"name":"family","members":[{"email":"alice@example.com","user":1}]},
		"alreadyInGroup":[],
		"membersNotFound":["ghost@example.com"]
	}}`, rec.Body.String())
}

func TestCreate_ValidationError(t *testing.T) {
	serv := &fakeService{err: model.ErrValidation}
	rec := do(newRouter(serv), http.MethodPost, "/api/groups", `{"name":"family","memberEmails":[]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAndList(t *testing.T) {
	serv := &fakeService{}
	router := newRouter(serv)

	rec := do(router, http.MethodGet, "/api/groups/family", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "family", serv.name)

	rec = do(router, http.MethodGet, "/api/groups", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[{"name":"family","members":[{"email":"alice@example.com","user":1}]}]}`, rec.Body.String())
}

func TestRemoveMembers(t *testing.T) {
	serv := &fakeService{}
	rec := do(newRouter(serv), http.MethodPatch, "/api/groups/family/remove", `{"emails":["bob@example.com"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"bob@example.com"}, serv.emails)
	assert.JSONEq(t, `{"data":{
		"group":{"name":"family","members":[{"email":"alice@example.com","user":1}]},
		"notInGroup":["bob@example.com"],
		"membersNotFound":[]
	}}`, rec.Body.String())
}

func TestDelete(t *testing.T) {
	serv := &fakeService{}
	rec := do(newRouter(serv), http.MethodDelete, "/api/groups", `{"name":"family"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "family", serv.name)
}
