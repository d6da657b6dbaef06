package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cookbook/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type difficultyPayload struct {
	Difficulty string `json:"difficulty" binding:"omitempty,difficulty"`
}

func newValidationEngine() *gin.Engine {
	SetupValidator()
	engine := gin.New()
	engine.POST("/", func(c *gin.Context) {
		var payload difficultyPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return engine
}

func postJSON(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestDifficultyValidation(t *testing.T) {
	engine := newValidationEngine()

	t.Run("accepts known levels", func(t *testing.T) {
		for _, level := range []string{"easy", "medium", "hard"} {
			w := postJSON(engine, `{"difficulty":"`+level+`"}`)
			assert.Equal(t, http.StatusOK, w.Code, level)
		}
	})

	t.Run("accepts absent difficulty", func(t *testing.T) {
		w := postJSON(engine, `{}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects unknown level with domain message", func(t *testing.T) {
		w := postJSON(engine, `{"difficulty":"EASY"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "Invalid difficulty level: EASY. Must be 'easy', 'medium', or 'hard'", resp.Error.Message)
	})
}

func TestHandleValidationErrorMalformedBody(t *testing.T) {
	engine := newValidationEngine()

	w := postJSON(engine, `{broken`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Invalid request body", resp.Error.Message)
}
