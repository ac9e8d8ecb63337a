package resp

import (
	"log"
	"net/http"

	"jangbo/pkg/apperr"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "code": apperr.KindValidation, "error": msg})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "code": "UNAUTHORIZED", "error": msg})
}

func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "code": apperr.KindForbidden, "error": msg})
}

// Fail maps a service error onto the envelope by its kind. Unclassified
// errors become a generic 500 without leaking internals.
func Fail(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status, msg := http.StatusInternalServerError, "internal error"
	switch kind {
	case apperr.KindValidation:
		status, msg = http.StatusBadRequest, err.Error()
	case apperr.KindNotFound:
		status, msg = http.StatusNotFound, err.Error()
	case apperr.KindForbidden:
		status, msg = http.StatusForbidden, err.Error()
	case apperr.KindStateConflict, apperr.KindCapacityExhausted, apperr.KindOutOfStock:
		status, msg = http.StatusConflict, err.Error()
	default:
		log.Printf("unclassified error: %v", err)
	}
	c.JSON(status, gin.H{"ok": false, "code": kind, "error": msg})
}
