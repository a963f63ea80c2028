package apperrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Respond(c, err)
	return w
}

func TestRespondValidation(t *testing.T) {
	w := respond(Validation("image is required"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "image is required")
}

func TestRespondNotFound(t *testing.T) {
	w := respond(NotFound("product"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "product not found")
}

func TestRespondAssetWrite(t *testing.T) {
	w := respond(&AssetWriteError{Name: "abc", Err: errors.New("disk full")})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRespondUnknownErrorIsOpaque500(t *testing.T) {
	w := respond(errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "boom")
}

func TestRespondUnwrapsWrappedErrors(t *testing.T) {
	wrapped := errorsJoin(Validation("bad id"))
	w := respond(wrapped)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func errorsJoin(err error) error {
	return &wrapper{err: err}
}

type wrapper struct{ err error }

func (w *wrapper) Error() string { return "wrapped: " + w.err.Error() }
func (w *wrapper) Unwrap() error { return w.err }
