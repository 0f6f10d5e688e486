package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Tomlord1122/tenant-backend/internal/logger"
)

func TestRespondWithJSONLogsToRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logger.NewContextWithLogger(req.Context(), zap.New(core)))
	rec := httptest.NewRecorder()

	respondWithJSON(rec, req, http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error preparing response"}`, rec.Body.String())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Error marshaling JSON response", logs.All()[0].Message)
}

func TestDecodeJSONSingleValue(t *testing.T) {
	tests := []struct {
		name string
		body string
		ok   bool
	}{
		{"single object", `{"title":"a"}`, true},
		{"trailing whitespace", "{\"title\":\"a\"}\n  ", true},
		{"trailing garbage", `{"title":"a"}garbage`, false},
		{"two objects", `{"title":"a"}{"title":"b"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var dst struct {
				Title string `json:"title"`
			}
			ok := decodeJSON(rec, req, &dst)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, "a", dst.Title)
			} else {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			}
		})
	}
}
