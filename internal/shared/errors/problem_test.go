package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDuplicate = errors.New("duplicate")

func TestWithExtensionDoesNotMutateTemplate(t *testing.T) {
	problem := ErrConflict.WithExtension("email", "a@jwt.com")
	assert.Equal(t, "a@jwt.com", problem.Extensions["email"])
	assert.Nil(t, ErrConflict.Extensions)
}

func TestFromStatus(t *testing.T) {
	problem := FromStatus(http.StatusUnauthorized, errors.New("not logged in"))
	assert.Equal(t, TypeUnauthorized, problem.Type)
	assert.Equal(t, "not logged in", problem.Detail)

	assert.Equal(t, http.StatusInternalServerError, FromStatus(http.StatusTeapot, nil).Status)
}

func TestRespondErrorUsesMappersFirst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	responder := NewResponder("https://pizza.test", func(err error) (ProblemDetail, bool) {
		if errors.Is(err, errDuplicate) {
			return ErrConflict.WithDetail(err.Error()), true
		}
		return ProblemDetail{}, false
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth", nil)
	responder.RespondError(c, fmt.Errorf("register: %w", errDuplicate))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "https://pizza.test"+TypeConflict, body.Type)
	assert.Equal(t, "/api/auth", body.Instance)
}

func TestRespondErrorFallsBackToInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/user", nil)

	DefaultResponder.RespondError(c, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromError(fmt.Errorf("wrap: %w", ErrNotFound)))
}
