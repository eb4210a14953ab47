package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-api/helper"
	"portfolio-api/middleware"
	"portfolio-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("handler-test-key")

func newTestEngine(h *helper.HTTPHelper, routes func(api *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", middleware.Authenticate(h, testKey))
	routes(api)
	return r
}

func perform(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := middleware.IssueToken(testKey, userID, models.RoleReader, time.Hour)
	require.NoError(t, err)
	return token
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) helper.Response {
	t.Helper()
	var res helper.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}
