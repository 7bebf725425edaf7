package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoggerRecordsRequestLine(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger())
	r.GET("/api/trending/movie", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/trending/movie?window=day", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// 日志不影响响应本身
	assert.Equal(t, http.StatusOK, w.Code)

	line := buf.String()
	assert.Contains(t, line, "[HTTP] GET /api/trending/movie?window=day")
	assert.Contains(t, line, "| 200 |")
}
