package apperrors

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

func TestWithDetailsDoesNotMutateShared(t *testing.T) {
	withDetails := ErrJobNotFound.WithDetails("extra")

	assert.Nil(t, ErrJobNotFound.Details)
	assert.Equal(t, "extra", withDetails.Details)
	assert.True(t, errors.Is(withDetails, ErrJobNotFound), "Копия сравнивается по коду и сообщению")
}

func TestIsThroughWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("service: %w", ErrPaymentVerificationFailed.WithError(cause))

	assert.True(t, Is(err, ErrPaymentVerificationFailed))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, Is(err, ErrJobNotFound))

	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
}

func TestMarshalHidesCause(t *testing.T) {
	err := InternalError(errors.New("pq: password authentication failed"))

	raw, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"code":"INTERNAL_ERROR","domain":"system","message":"Internal server error"}`, string(raw))
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"app error", ErrAlreadyApplied, http.StatusBadRequest, string(CodeAlreadyExists)},
		{"validation", ValidationError(map[string]string{"title": "Title is required"}), http.StatusBadRequest, string(CodeValidationFailed)},
		{"conflict", ErrPaymentReferenceUsed, http.StatusConflict, string(CodeConflict)},
		{"forbidden", ErrAccessDenied, http.StatusForbidden, string(CodeForbidden)},
		{"invalid status", ErrApplicationFinalized, http.StatusBadRequest, string(CodeInvalidStatus)},
		{"invalid operation", ErrEmailAlreadyVerified, http.StatusBadRequest, string(CodeInvalidOperation)},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, string(CodeInternalError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["code"])
			assert.NotContains(t, w.Body.String(), "boom")
		})
	}
}
