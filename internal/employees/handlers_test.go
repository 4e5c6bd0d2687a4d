package employees

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(store Store) http.Handler {
	r := chi.NewRouter()
	NewHandler(store, zap.NewNop().Sugar()).Routes(r)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandler_Create(t *testing.T) {
	h := newTestRouter(NewMemoryStore())

	w := doJSON(t, h, http.MethodPost, "/employees", `{
		"first_name": "Ana",
		"last_name": "García",
		"email": "ana@example.com",
		"position": "Developer",
		"salary": 50000,
		"hire_date": "2024-03-01"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var e Employee
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.Equal(t, int64(1), e.ID)
	assert.Equal(t, "Ana", e.FirstName)
	assert.Equal(t, "2024-03-01", e.HireDate.Format("2006-01-02"))
}

func TestHandler_CreateAppliesDefaults(t *testing.T) {
	h := newTestRouter(NewMemoryStore())

	w := doJSON(t, h, http.MethodPost, "/employees", `{"email": "min@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var e Employee
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.Equal(t, "Unknown", e.FirstName)
	assert.Equal(t, "Unknown", e.LastName)
	assert.Equal(t, "Employee", e.Position)
	assert.False(t, e.HireDate.IsZero())
}

func TestHandler_CreateValidation(t *testing.T) {
	h := newTestRouter(NewMemoryStore())

	cases := map[string]string{
		"MissingEmail":   `{"first_name": "Ana"}`,
		"BadEmail":       `{"email": "not-an-email"}`,
		"NegativeSalary": `{"email": "a@example.com", "salary": -1}`,
		"BadHireDate":    `{"email": "a@example.com", "hire_date": "01/03/2024"}`,
		"UnknownField":   `{"email": "a@example.com", "surprise": true}`,
		"NotJSON":        `not json`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := doJSON(t, h, http.MethodPost, "/employees", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandler_CreateDuplicateEmail(t *testing.T) {
	h := newTestRouter(NewMemoryStore())

	body := `{"email": "dup@example.com"}`
	require.Equal(t, http.StatusCreated, doJSON(t, h, http.MethodPost, "/employees", body).Code)

	w := doJSON(t, h, http.MethodPost, "/employees", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "email already registered")
}

func TestHandler_GetAndList(t *testing.T) {
	store := NewMemoryStore()
	e := newTestEmployee("ana@example.com")
	require.NoError(t, store.Create(context.Background(), e))
	h := newTestRouter(store)

	w := doJSON(t, h, http.MethodGet, "/employees/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ana@example.com")

	w = doJSON(t, h, http.MethodGet, "/employees/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, h, http.MethodGet, "/employees", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []Employee
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestHandler_Update(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Create(context.Background(), newTestEmployee("ana@example.com")))
	require.NoError(t, store.Create(context.Background(), newTestEmployee("luis@example.com")))
	h := newTestRouter(store)

	w := doJSON(t, h, http.MethodPut, "/employees/1", `{
		"first_name": "Ana",
		"last_name": "García",
		"email": "ana@example.com",
		"position": "Lead",
		"salary": 60000
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var e Employee
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.Equal(t, int64(1), e.ID)
	assert.Equal(t, "Lead", e.Position)
	assert.Equal(t, float64(60000), e.Salary)

	w = doJSON(t, h, http.MethodPut, "/employees/1", `{"email": "no-at-sign"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodPut, "/employees/999", `{"email": "nobody@example.com"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, h, http.MethodPut, "/employees/1", `{"email": "luis@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_Delete(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Create(context.Background(), newTestEmployee("ana@example.com")))
	h := newTestRouter(store)

	w := doJSON(t, h, http.MethodDelete, "/employees/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, h, http.MethodDelete, "/employees/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_BadID(t *testing.T) {
	h := newTestRouter(NewMemoryStore())

	for _, id := range []string{"abc", "0", "-5"} {
		w := doJSON(t, h, http.MethodGet, "/employees/"+id, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "id %q", id)
		assert.True(t, strings.Contains(w.Body.String(), "positive integer"))
	}
}
