package utilities

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobposter-backend/internal/apperror"
	"jobposter-backend/internal/model"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		kind apperror.Kind
		want int
	}{
		{apperror.InvalidInput, http.StatusBadRequest},
		{apperror.Unauthenticated, http.StatusUnauthorized},
		{apperror.Forbidden, http.StatusForbidden},
		{apperror.JobNotFound, http.StatusNotFound},
		{apperror.ApplicationNotFound, http.StatusNotFound},
		{apperror.DuplicateEmail, http.StatusConflict},
		{apperror.DuplicateApplication, http.StatusConflict},
		{apperror.InvalidTransition, http.StatusConflict},
		{apperror.Internal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(apperror.New(tt.kind, "x", nil)))
		})
	}

	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("plain")))
}

func TestRespondError_HidesInternalCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	RespondError(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.Len(t, c.Errors, 1)
}

func TestRespondError_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	RespondError(c, apperror.New(apperror.DuplicateApplication, "Already applied to this job", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"Already applied to this job"}`, rec.Body.String())
}

func TestParseUUIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	_, err := ParseUUIDParam(c, "id")
	assert.True(t, apperror.Is(err, apperror.InvalidInput))

	c.Params = gin.Params{{Key: "id", Value: "3f2504e0-4f89-11d3-9a0c-0305e82c3301"}}
	id, err := ParseUUIDParam(c, "id")
	assert.NoError(t, err)
	assert.Equal(t, "3f2504e0-4f89-11d3-9a0c-0305e82c3301", id.String())
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	assert.NoError(t, err)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestExtractBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := ExtractBearerToken(c)
	assert.Error(t, err)

	c.Request.Header.Set("Authorization", "Bearer abc.def")
	tok, err := ExtractBearerToken(c)
	assert.NoError(t, err)
	assert.Equal(t, "abc.def", tok)
}

func TestSimulateAPICall_Setup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.New()

	handler := func(c *gin.Context) {
		user, err := ExtractUser(c)
		if err != nil {
			RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID.String()})
	}

	rec, resp, err := SimulateAPICall(handler, "/me", http.MethodGet, nil, func(c *gin.Context) {
		c.Set("user", model.User{ID: id, Role: model.RoleUser})
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id.String(), resp["id"])

	rec, resp, err = SimulateAPICall(handler, "/me", http.MethodGet, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User information not provided", resp["error"])
}
