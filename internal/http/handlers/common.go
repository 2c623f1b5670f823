package handlers

import (
	"net/http"
	"strconv"
	"time"

	"fjelldrift/internal/http/middleware"
	"fjelldrift/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondError sends a standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// idParam parses the numeric :id path segment.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return id, true
}

// referenceTime resolves the evaluation instant: the optional ?at=
// query wins, otherwise the current time in the reference timezone.
// Mainly for operators
// checking what the maps will look like on a given day.
func referenceTime(c *gin.Context) (time.Time, bool) {
	at := c.Query("at")
	if at == "" {
		return utils.Now(), true
	}
	t, err := utils.ParseFlexible(at, utils.ReferenceLocation())
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid at parameter", err)
		return time.Time{}, false
	}
	return t, true
}
