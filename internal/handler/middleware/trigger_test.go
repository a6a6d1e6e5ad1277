//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"engagement-scheduler/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequireTriggerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.RequireTriggerToken("secret-token"))
	router.POST("/runs", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{name: "valid token", token: "secret-token", wantStatus: http.StatusOK},
		{name: "missing token", token: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong token", token: "other", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/runs", nil)
			if tt.token != "" {
				req.Header.Set(middleware.TriggerTokenHeader, tt.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
