package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"expense_tracker/internal/filter"
	"expense_tracker/internal/model"
	"expense_tracker/pkg/logger"
	"expense_tracker/pkg/resp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Status(fmt.Errorf("%w: x", model.ErrNotFound)))
	assert.Equal(t, http.StatusBadRequest, Status(filter.ErrConflictingFilter))
	assert.Equal(t, http.StatusBadRequest, Status(model.ErrInvalidLogin))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("db down")))
}

func TestWrite(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/users", nil)

	rec := httptest.NewRecorder()
	Write(rec, r, logger.NewNop(), fmt.Errorf("%w: email is not valid", model.ErrValidation))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body resp.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation error: email is not valid", body.Error)

	rec = httptest.NewRecorder()
	Write(rec, r, logger.NewNop(), errors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal Server Error", body.Error)
}
