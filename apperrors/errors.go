package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidationError covers malformed or disallowed input: bad uploads, missing
// required fields, unparseable id lists. Nothing has been written when one is
// returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError means the referenced document does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func NotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// AssetWriteError aborts the whole request: the document mutation must not
// proceed when a file could not be persisted.
type AssetWriteError struct {
	Name string
	Err  error
}

func (e *AssetWriteError) Error() string { return fmt.Sprintf("store asset %s: %v", e.Name, e.Err) }
func (e *AssetWriteError) Unwrap() error { return e.Err }

// AssetDeleteError is never surfaced to a caller. Removal failures are
// reported to the reaper's sink; the owning document operation has already
// committed.
type AssetDeleteError struct {
	Name string
	Err  error
}

func (e *AssetDeleteError) Error() string { return fmt.Sprintf("delete asset %s: %v", e.Name, e.Err) }
func (e *AssetDeleteError) Unwrap() error { return e.Err }

// Respond maps an error to its HTTP response. Anything outside the taxonomy
// becomes a 500 carrying only the message.
func Respond(c *gin.Context, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": ve.Message})
		return
	}
	var nfe *NotFoundError
	if errors.As(err, &nfe) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": nfe.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
}
