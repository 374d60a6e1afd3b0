package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KhalidAdan/tables/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sampleBody(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(model.SampleModel(model.TargetPostgres))
	require.NoError(t, err)
	return string(data)
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListTargets(t *testing.T) {
	w := do(New().Router(), http.MethodGet, "/targets", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string   `json:"status"`
		Data   []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, []string{"mysql", "postgres", "prisma", "sqlite"}, resp.Data)
}

func TestGenerateSchema(t *testing.T) {
	tests := []struct {
		target string
		prefix string
	}{
		{"postgres", "-- Tables App schema generated for PostgreSQL"},
		{"mysql", "-- Tables App schema generated for MySQL"},
		{"sqlite", "-- Tables App schema generated for SQLite"},
		{"prisma", "// Tables App schema generated for Prisma"},
	}

	router := New().Router()
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := do(router, http.MethodPost, "/generate/"+tt.target, sampleBody(t))
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
			assert.True(t, strings.HasPrefix(w.Body.String(), tt.prefix), w.Body.String())
		})
	}
}

func TestGenerateSchemaErrors(t *testing.T) {
	missingPK := `{"name":"X","entities":[{"id":"a","name":"A","attributes":[]},{"id":"b","name":"B","attributes":[]}],` +
		`"relations":[{"id":"r","type":"one-to-many","fromEntity":"a","toEntity":"b"}]}`

	tests := []struct {
		name    string
		target  string
		body    string
		code    int
		message string
	}{
		{"unknown target", "oracle", `{}`, http.StatusNotFound, "Unknown target"},
		{"malformed json", "postgres", `{"name":`, http.StatusBadRequest, "Invalid request body"},
		{"missing name", "postgres", `{"entities":[]}`, http.StatusBadRequest, "Invalid model"},
		{"missing primary key", "sqlite", missingPK, http.StatusBadRequest, "Invalid model"},
	}

	router := New().Router()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/generate/"+tt.target, tt.body)
			require.Equal(t, tt.code, w.Code, w.Body.String())

			var resp APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tt.message, resp.Message)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestGenerateFailureIsUnprocessable(t *testing.T) {
	s := &Server{generate: func(*model.Model, model.Target) (string, error) {
		return "", errors.New("unsupported field type: blob")
	}}

	w := do(s.Router(), http.MethodPost, "/generate/mysql", sampleBody(t))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "blob")
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/generate/postgres", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	New().Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
